package Iservices

import (
	"context"

	"chat-connector/internal/domain/dto"
)

type IDispatchService interface {
	// Respond runs the full pipeline for one inbound message and returns
	// the composed reply. An Ignored result means the echo guard fired.
	Respond(ctx context.Context, userID, message, persona string) (dto.ChatResult, error)

	// Welcome returns the initial greeting requested via the init flag.
	Welcome(ctx context.Context, userID, persona string) (dto.ChatResult, error)
}
