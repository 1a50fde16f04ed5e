package service

import (
	"context"
	"io"
	"sync"
	"time"

	"arjuna.id/healthquest/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They hold the same contracts as the gorm
// implementations, including returning gorm.ErrRecordNotFound for missing
// rows, so the services under test exercise their real error mapping.

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*model.User
	history map[uuid.UUID][]model.QuestCompletion
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[uuid.UUID]*model.User),
		history: make(map[uuid.UUID][]model.QuestCompletion),
	}
}

func (r *fakeUserRepo) add(user *model.User) *model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	// Store a copy: an insert snapshots the row, so later mutation of the
	// caller's struct must not leak into the store.
	copied := *user
	r.users[user.ID] = &copied
	return user
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	copied.QuestHistory = append([]model.QuestCompletion(nil), r.history[id]...)
	return &copied, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		users = append(users, &copied)
	}
	return users, nil
}

func (r *fakeUserRepo) FindAllRanked(ctx context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) AddQuestCompletion(ctx context.Context, userID uuid.UUID, completion *model.QuestCompletion) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	completion.UserID = userID
	user.Exp += completion.ExpEarned
	r.history[userID] = append(r.history[userID], *completion)
	return user.Exp, nil
}

func (r *fakeUserRepo) FindQuestHistory(ctx context.Context, userID uuid.UUID) ([]model.QuestCompletion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.QuestCompletion(nil), r.history[userID]...), nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[uuid.UUID]*model.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uuid.UUID]*model.Post)}
}

func clonePost(p *model.Post) *model.Post {
	copied := *p
	copied.Likes = append([]model.PostLike(nil), p.Likes...)
	copied.Comments = append([]model.Comment(nil), p.Comments...)
	return &copied
}

func (r *fakePostRepo) Create(ctx context.Context, post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	r.posts[post.ID] = clonePost(post)
	return nil
}

func (r *fakePostRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return clonePost(post), nil
}

func (r *fakePostRepo) FindAll(ctx context.Context) ([]model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posts := make([]model.Post, 0, len(r.posts))
	for _, p := range r.posts {
		posts = append(posts, *clonePost(p))
	}
	return posts, nil
}

func (r *fakePostRepo) Update(ctx context.Context, post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.posts[post.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existing.Description = post.Description
	existing.Image = post.Image
	return nil
}

func (r *fakePostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[postID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for i, l := range post.Likes {
		if l.UserID == userID {
			post.Likes = append(post.Likes[:i], post.Likes[i+1:]...)
			return clonePost(post), nil
		}
	}
	post.Likes = append(post.Likes, model.PostLike{PostID: postID, UserID: userID, CreatedAt: time.Now()})
	return clonePost(post), nil
}

func (r *fakePostRepo) AddComment(ctx context.Context, comment *model.Comment) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[comment.PostID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	comment.CreatedAt = time.Now()
	post.Comments = append(post.Comments, *comment)
	return clonePost(post), nil
}

func (r *fakePostRepo) IncrementShare(ctx context.Context, postID uuid.UUID) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[postID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	post.Shares++
	return clonePost(post), nil
}

// fakeImageStorage records uploads and deletions so tests can assert the
// placeholder image is never released.
type fakeImageStorage struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
}

func (s *fakeImageStorage) UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	url := "https://img.example/" + folder + "/" + fileName
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

func (s *fakeImageStorage) DeleteImage(ctx context.Context, fileURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, fileURL)
	return nil
}

// recordingNotifier captures notifications instead of hitting the store.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []model.Notification
}

func (n *recordingNotifier) CreateNotification(ctx context.Context, notification *model.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, *notification)
	return nil
}

func (n *recordingNotifier) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	return nil, nil
}

func (n *recordingNotifier) MarkAsRead(ctx context.Context, id uuid.UUID) error { return nil }

func (n *recordingNotifier) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error { return nil }

func (n *recordingNotifier) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}
