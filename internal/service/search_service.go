package service

import (
	"encoding/json"
	"html"
	"log"
	"strings"

	"arjuna.id/healthquest/internal/model"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const postsIndex = "posts"

// SearchService maintains the Meilisearch posts index. All methods are
// no-ops when the client is nil so the API keeps working without a search
// backend.
type SearchService interface {
	IndexPost(post *model.Post)
	RemovePost(id string)
	SearchPosts(query string, limit int64) ([]uuid.UUID, error)
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndex()
	return s
}

func (s *searchService) initIndex() {
	if s.client == nil {
		return
	}

	sortable := []string{"created_at"}
	if _, err := s.client.Index(postsIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("Failed to update posts sortable attributes: %v", err)
		return
	}

	log.Println("Meilisearch posts index initialized")
}

type meiliPostDoc struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Username    string `json:"username"`
	CreatedAt   int64  `json:"created_at"`
}

func (s *searchService) cleanForIndex(content string) string {
	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)
	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *searchService) IndexPost(post *model.Post) {
	if s.client == nil {
		return
	}

	doc := meiliPostDoc{
		ID:          post.ID.String(),
		Description: s.cleanForIndex(post.Description),
		Username:    post.User.Username,
		CreatedAt:   post.CreatedAt.Unix(),
	}

	if _, err := s.client.Index(postsIndex).AddDocuments([]meiliPostDoc{doc}, strPtr("id")); err != nil {
		log.Printf("Failed to index post %s: %v", doc.ID, err)
	}
}

func (s *searchService) RemovePost(id string) {
	if s.client == nil {
		return
	}

	if _, err := s.client.Index(postsIndex).DeleteDocument(id); err != nil {
		log.Printf("Failed to remove post %s from index: %v", id, err)
	}
}

func (s *searchService) SearchPosts(query string, limit int64) ([]uuid.UUID, error) {
	if s.client == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	resp, err := s.client.Index(postsIndex).Search(query, &meilisearch.SearchRequest{
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		var idStr string
		if raw, ok := hit["id"]; ok {
			if err := json.Unmarshal(raw, &idStr); err != nil {
				continue
			}
		}
		if id, err := uuid.Parse(idStr); err == nil {
			ids = append(ids, id)
		}
	}

	return ids, nil
}

func strPtr(s string) *string {
	return &s
}
