package repository

import (
	"context"
	"time"

	"smokeysalmons/internal/domain/model"
)

type PromotionRepository interface {
	// ListUsableはactiveかつ未失効（endsAtがnullまたはnow以降）のものだけ返す。
	// startsAtやminOrderはここでは見ない（価格側の関心）。
	ListUsable(ctx context.Context, now time.Time) ([]model.Promotion, error)

	List(ctx context.Context) ([]model.Promotion, error)

	//code単位のcreate-or-update
	Upsert(ctx context.Context, p model.Promotion) (model.Promotion, error)
}
