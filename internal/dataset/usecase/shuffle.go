package usecase

import (
	"context"

	"github.com/shandysiswandi/tweetprep/internal/dataset/entity"
)

// Shuffle permutes texts in place, uniformly at random unless a different
// ShuffleFunc was injected.
func (u *Usecase) Shuffle(ctx context.Context, texts []string) {
	u.shuffle(len(texts), func(i, j int) {
		texts[i], texts[j] = texts[j], texts[i]
	})

	u.report(ctx, entity.Event{Kind: entity.EventShuffled, Stage: entity.StageShuffle, Count: int64(len(texts))})
}
