package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/valyala/bytebufferpool"

	"github.com/Ndwalker8/NFL-100/internal/domain/rawdata"
	"github.com/Ndwalker8/NFL-100/internal/platform/logging"
)

// ArchiveService persists raw upstream payloads for schema-drift
// debugging. It implements PayloadArchiver; failures are logged and
// swallowed so archival can never break a user-facing fetch.
type ArchiveService struct {
	repo   rawdata.Repository
	logger *logging.Logger
	now    func() time.Time
}

func NewArchiveService(repo rawdata.Repository, logger *logging.Logger) *ArchiveService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ArchiveService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *ArchiveService) Archive(ctx context.Context, source, entityType, entityKey string, body []byte) {
	if s == nil || s.repo == nil || len(body) == 0 {
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	// Hash input is source-scoped so identical bodies from different
	// feeds archive as distinct rows.
	_, _ = buf.WriteString(source)
	_ = buf.WriteByte('\n')
	_, _ = buf.Write(body)
	digest := sha256.Sum256(buf.Bytes())

	item := rawdata.Payload{
		Source:      source,
		EntityType:  entityType,
		EntityKey:   entityKey,
		PayloadBody: string(body),
		PayloadHash: hex.EncodeToString(digest[:]),
		FetchedAt:   s.now().UTC(),
	}

	if err := s.repo.UpsertMany(ctx, []rawdata.Payload{item}); err != nil {
		s.logger.WarnContext(ctx, "payload archive write failed",
			"source", source, "entity_key", entityKey, "error", err)
	}
}
