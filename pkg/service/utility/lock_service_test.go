package utility

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

func TestInFlightGuard(t *testing.T) {
	g := NewInFlightGuard()
	first := model.PendingMutation{ID: "m-1", ContentID: 12, Kind: model.MutationLikeToggle}

	if !g.TryAcquire("like:essay:12", first) {
		t.Fatal("首次占用应成功")
	}
	if g.TryAcquire("like:essay:12", model.PendingMutation{ID: "m-2"}) {
		t.Fatal("进行中的键不应被再次占用")
	}
	if !g.TryAcquire("like:essay:13", model.PendingMutation{ID: "m-3"}) {
		t.Fatal("不同的键互不影响")
	}

	got, ok := g.Pending("like:essay:12")
	if !ok || got.ID != "m-1" {
		t.Fatalf("Pending = (%+v, %v), want m-1", got, ok)
	}

	released, ok := g.Release("like:essay:12")
	if !ok || released.ID != "m-1" {
		t.Fatalf("Release = (%+v, %v), want m-1", released, ok)
	}
	if _, ok := g.Pending("like:essay:12"); ok {
		t.Fatal("释放后不应再处于进行中")
	}
	if !g.TryAcquire("like:essay:12", model.PendingMutation{ID: "m-4"}) {
		t.Fatal("释放后应能再次占用")
	}
	if g.Len() != 2 {
		t.Fatalf("Len = %d, want 2", g.Len())
	}
}

func TestInFlightGuardConcurrentAcquire(t *testing.T) {
	g := NewInFlightGuard()
	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryAcquire("k", model.PendingMutation{}) {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("并发占用成功次数 = %d, want 1", wins)
	}
}

func TestInFlightGuardUpdate(t *testing.T) {
	g := NewInFlightGuard()
	if g.Update("like:blog:1", model.PendingMutation{ID: "m-1"}) {
		t.Fatal("未占用的键不能更新")
	}
	if _, ok := g.Pending("like:blog:1"); ok {
		t.Fatal("更新失败时不应留下记录")
	}

	g.TryAcquire("like:blog:1", model.PendingMutation{ID: "m-1"})
	withSnapshot := model.PendingMutation{ID: "m-1", Previous: model.LikeSnapshot{IsLiked: true, LikeCount: 4}}
	if !g.Update("like:blog:1", withSnapshot) {
		t.Fatal("占用中的键应能更新")
	}
	got, _ := g.Pending("like:blog:1")
	if !got.Previous.IsLiked || got.Previous.LikeCount != 4 {
		t.Fatalf("Pending.Previous = %+v, want (true,4)", got.Previous)
	}
}
