package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/paperly/paperly/internal/model"
	appErr "github.com/paperly/paperly/internal/pkg/errors"
	"github.com/paperly/paperly/internal/pkg/timeutil"
	"github.com/paperly/paperly/internal/repo"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

const (
	relatedLimit       = 5
	queryCacheSize     = 256
	queryCacheTTL      = 15 * time.Minute
	staleSyncBatchSize = 50
)

type RelatedService struct {
	embeddings *repo.EmbeddingRepo
	papers     *PaperService
	ai         *AIService
	queryCache *expirable.LRU[string, []float32]
}

func NewRelatedService(embeddings *repo.EmbeddingRepo, papers *PaperService, aiSvc *AIService) *RelatedService {
	return &RelatedService{
		embeddings: embeddings,
		papers:     papers,
		ai:         aiSvc,
		queryCache: expirable.NewLRU[string, []float32](queryCacheSize, nil, queryCacheTTL),
	}
}

type RelatedPaper struct {
	Paper model.Paper `json:"paper"`
	Score float32     `json:"score"`
}

func contentHash(title, abstract string) string {
	sum := md5.Sum([]byte(title + abstract))
	return hex.EncodeToString(sum[:])
}

// ListRelated finds the papers semantically closest to the given one. The
// query embedding is cached on the content hash so repeated lookups of an
// unchanged paper skip the provider round trip.
func (s *RelatedService) ListRelated(ctx context.Context, userID, paperID string) ([]RelatedPaper, error) {
	paper, err := s.papers.Get(ctx, userID, paperID)
	if err != nil {
		return nil, err
	}
	if paper.Abstract == "" {
		return []RelatedPaper{}, nil
	}
	hash := contentHash(paper.Title, paper.Abstract)
	vector, ok := s.queryCache.Get(hash)
	if !ok {
		vector, err = s.ai.Embed(ctx, paper.Title+"\n"+paper.Abstract)
		if err != nil {
			return nil, err
		}
		s.queryCache.Add(hash, vector)
	}
	neighbors, err := s.embeddings.Nearest(ctx, userID, vector, paperID, relatedLimit)
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		return []RelatedPaper{}, nil
	}
	ids := make([]string, 0, len(neighbors))
	scores := make(map[string]float32, len(neighbors))
	for _, n := range neighbors {
		ids = append(ids, n.PaperID)
		scores[n.PaperID] = n.Score
	}
	papers, err := s.papers.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Paper, len(papers))
	for _, p := range papers {
		byID[p.ID] = p
	}
	items := make([]RelatedPaper, 0, len(neighbors))
	for _, n := range neighbors {
		p, ok := byID[n.PaperID]
		if !ok {
			continue
		}
		items = append(items, RelatedPaper{Paper: p, Score: scores[n.PaperID]})
	}
	return items, nil
}

// ProcessStaleEmbeddings re-embeds papers whose title or abstract changed
// since the stored vector was computed. A per-paper failure is logged and
// skipped so one broken abstract cannot stall the whole batch.
func (s *RelatedService) ProcessStaleEmbeddings(ctx context.Context) error {
	stale, err := s.embeddings.ListStale(ctx, staleSyncBatchSize)
	if err != nil {
		return err
	}
	for _, paper := range stale {
		vector, err := s.ai.Embed(ctx, paper.Title+"\n"+paper.Abstract)
		if err != nil {
			if appErr.IsAIUnavailable(err) {
				return err
			}
			logutil.GetLogger(ctx).Warn("embed paper failed",
				zap.String("paper_id", paper.ID), zap.Error(err))
			continue
		}
		emb := &model.PaperEmbedding{
			PaperID:     paper.ID,
			UserID:      paper.UserID,
			Embedding:   vector,
			ContentHash: contentHash(paper.Title, paper.Abstract),
			Mtime:       timeutil.NowUnix(),
		}
		if err := s.embeddings.Upsert(ctx, emb); err != nil {
			logutil.GetLogger(ctx).Warn("store embedding failed",
				zap.String("paper_id", paper.ID), zap.Error(err))
		}
	}
	return nil
}
