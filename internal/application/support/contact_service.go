package support

import (
	"context"

	"go.uber.org/zap"

	"github.com/erp/odoo-facade/internal/domain/shared"
	"github.com/erp/odoo-facade/internal/domain/support"
	"github.com/erp/odoo-facade/internal/infrastructure/logger"
)

// ContactService relays customer inquiries to a discussion channel
type ContactService struct {
	channelRepo support.ChannelRepository
	candidates  []string
}

// NewContactService creates a new ContactService that posts to the first
// channel matching support.ChannelCandidates.
func NewContactService(channelRepo support.ChannelRepository) *ContactService {
	return &ContactService{
		channelRepo: channelRepo,
		candidates:  support.ChannelCandidates,
	}
}

// SubmitInquiry validates the inquiry and posts it to the support channel
func (s *ContactService) SubmitInquiry(ctx context.Context, inquiry support.Inquiry) (*support.PostedInquiry, error) {
	if err := inquiry.Validate(); err != nil {
		return nil, err
	}

	channelID, err := s.findChannel(ctx)
	if err != nil {
		return nil, err
	}

	body := inquiry.Body()
	messageID, err := s.channelRepo.Post(ctx, channelID, body)
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Inquiry posted",
		zap.Int64("channel_id", channelID),
		zap.Int64("message_id", messageID),
		zap.String("issue_type", inquiry.IssueType),
	)
	return &support.PostedInquiry{
		Message:    "Inquiry sent successfully.",
		ChannelID:  channelID,
		MessageID:  messageID,
		Body:       body,
		PostedData: inquiry,
	}, nil
}

func (s *ContactService) findChannel(ctx context.Context) (int64, error) {
	for _, name := range s.candidates {
		ids, err := s.channelRepo.FindByName(ctx, name)
		if err != nil {
			return 0, err
		}
		if len(ids) > 0 {
			return ids[0], nil
		}
	}
	return 0, shared.NewDomainError(shared.CodeChannelNotFound, "could not find a discussion channel to post to")
}
