package interaction

import (
	"context"
	"sync"
	"time"

	"github.com/anzhiyu-c/anheyu-interact/pkg/constant"
	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

type likeCall struct {
	contentID uint
	liked     bool
}

type fakeRemote struct {
	mu sync.Mutex

	likeErr    error
	commentErr error
	deleteErr  error
	// likeGate 非空时 SetLike 阻塞直到收到信号
	likeGate chan struct{}
	likeSeen chan struct{}

	likes      []likeCall
	drafts     []model.CommentDraft
	deletes    []uint
	nextID     uint
	fetches    int
	payloads   map[uint]model.ContentPayload
	essayFeeds []model.ContentPayload
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{nextID: 500, payloads: make(map[uint]model.ContentPayload)}
}

func (f *fakeRemote) FetchContent(ctx context.Context, kind model.ContentKind, contentID, viewerID uint) (*model.ContentPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	p, ok := f.payloads[contentID]
	if !ok {
		return nil, constant.ErrNotFound
	}
	p.Comments = model.CloneComments(p.Comments)
	return &p, nil
}

func (f *fakeRemote) FetchEssays(ctx context.Context, viewerID uint) ([]model.ContentPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	return append([]model.ContentPayload(nil), f.essayFeeds...), nil
}

func (f *fakeRemote) SetLike(ctx context.Context, kind model.ContentKind, contentID, viewerID uint, liked bool) error {
	f.mu.Lock()
	f.likes = append(f.likes, likeCall{contentID: contentID, liked: liked})
	gate, seen, err := f.likeGate, f.likeSeen, f.likeErr
	f.mu.Unlock()
	if seen != nil {
		seen <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	return err
}

func (f *fakeRemote) CreateComment(ctx context.Context, kind model.ContentKind, contentID uint, draft model.CommentDraft) (uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drafts = append(f.drafts, draft)
	if f.commentErr != nil {
		return 0, f.commentErr
	}
	f.nextID++
	return f.nextID, nil
}

func (f *fakeRemote) DeleteComment(ctx context.Context, kind model.ContentKind, commentID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, commentID)
	return f.deleteErr
}

func (f *fakeRemote) likeCalls() []likeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]likeCall(nil), f.likes...)
}

func (f *fakeRemote) draftCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.drafts)
}

type fakeIdentity struct {
	viewer  *model.Viewer
	prompts int
}

func (i *fakeIdentity) Viewer() (*model.Viewer, bool) {
	if i.viewer == nil {
		return nil, false
	}
	v := *i.viewer
	return &v, true
}

func (i *fakeIdentity) CanDelete() bool { return i.viewer.IsAdmin() }

func (i *fakeIdentity) PromptLogin() { i.prompts++ }

type fakeNotifier struct {
	mu      sync.Mutex
	notices []model.Notice
}

func (n *fakeNotifier) Notify(notice model.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

func (n *fakeNotifier) last() model.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notices) == 0 {
		return model.Notice{}
	}
	return n.notices[len(n.notices)-1]
}

var (
	reader = &model.Viewer{UserID: 7, Nickname: "小鱼", UserGroupID: 2}
	admin  = &model.Viewer{UserID: 1, Nickname: "安知鱼", UserGroupID: model.AdminUserGroupID}
)

func at(hour, min int) time.Time {
	return time.Date(2026, 10, 17, hour, min, 0, 0, time.UTC)
}

func uptr(v uint) *uint { return &v }

type fixture struct {
	engine   *Engine
	remote   *fakeRemote
	identity *fakeIdentity
	notifier *fakeNotifier
}

func newFixture(viewer *model.Viewer, opts Options) *fixture {
	f := &fixture{remote: newFakeRemote(), identity: &fakeIdentity{viewer: viewer}, notifier: &fakeNotifier{}}
	if opts.Now == nil {
		opts.Now = func() time.Time { return at(9, 30) }
	}
	f.engine = NewEngine(model.KindBlog, f.remote, f.identity, f.notifier, nil, opts)
	return f
}
