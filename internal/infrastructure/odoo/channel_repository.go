package odoo

import (
	"context"

	"github.com/erp/odoo-facade/internal/domain/support"
)

const modelChannel = "discuss.channel"

// ChannelRepository implements support.ChannelRepository over discuss.channel.
type ChannelRepository struct {
	gw *Gateway
}

// NewChannelRepository creates a new ChannelRepository
func NewChannelRepository(gw *Gateway) *ChannelRepository {
	return &ChannelRepository{gw: gw}
}

var _ support.ChannelRepository = (*ChannelRepository)(nil)

func (r *ChannelRepository) FindByName(ctx context.Context, name string) ([]int64, error) {
	reply, err := r.gw.Execute(ctx, SearchRequest{
		Model:  modelChannel,
		Domain: Domain{Where("name", OpILike, name)},
	})
	if err != nil {
		return nil, err
	}
	return asIDs(reply)
}

// Post posts body as a comment authored by the session user.
func (r *ChannelRepository) Post(ctx context.Context, channelID int64, body string) (int64, error) {
	uid, err := r.gw.SessionUID(ctx)
	if err != nil {
		return 0, err
	}

	reply, err := r.gw.Execute(ctx, ActionRequest{
		Model:  modelChannel,
		Method: "message_post",
		IDs:    []int64{channelID},
		Kwargs: map[string]any{
			"body":          body,
			"message_type":  "comment",
			"subtype_xmlid": "mail.mt_comment",
			"author_id":     uid,
		},
	})
	if err != nil {
		return 0, err
	}
	id, _ := asInt64(reply)
	return id, nil
}
