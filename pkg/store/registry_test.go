package store

import (
	"errors"
	"testing"

	"github.com/anzhiyu-c/anheyu-interact/pkg/constant"
	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

func TestRegistryFeedOrdering(t *testing.T) {
	r := NewRegistry()
	items := []model.ContentItem{
		{ID: 1, Kind: model.KindEssay, CreatedAt: at(8, 0)},
		{ID: 2, Kind: model.KindEssay, CreatedAt: at(9, 0)},
		{ID: 3, Kind: model.KindEssay, CreatedAt: at(7, 0), Recommend: true},
	}
	for _, it := range items {
		if _, err := r.Put(it, nil); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	feed := r.Feed()
	var got []uint
	for _, st := range feed {
		got = append(got, st.Item.ID)
	}
	if !equalIDs(got, []uint{3, 2, 1}) {
		t.Fatalf("expected [3 2 1], got %v", got)
	}
}

func TestRegistryItemsAreIndependent(t *testing.T) {
	r := NewRegistry()
	a, _ := r.Put(model.ContentItem{ID: 1, LikeCount: 1}, nil)
	b, _ := r.Put(model.ContentItem{ID: 2, LikeCount: 5}, nil)

	_ = a.Dispatch(ToggleLike{})
	if b.GetState().Item.LikeCount != 5 || b.GetState().Item.IsLiked {
		t.Fatalf("mutation on item 1 leaked into item 2")
	}

	r.Remove(1)
	if _, err := r.Get(1); !errors.Is(err, constant.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after Remove, got %v", err)
	}
}
