// Package youtube binds the comments.Source port to the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
	ytv3 "google.golang.org/api/youtube/v3"

	"github.com/example/ytcomments/internal/comments"
)

// Error reasons reported by the Data API that map onto domain errors.
const (
	reasonCommentsDisabled = "commentsDisabled"
	reasonVideoNotFound    = "videoNotFound"
	reasonKeyInvalid       = "keyInvalid"
	reasonKeyExpired       = "keyExpired"

	// ErrorInfo reasons carried in error details.
	infoAPIKeyInvalid = "API_KEY_INVALID"
	infoAPIKeyExpired = "API_KEY_EXPIRED"
	errorInfoType     = "type.googleapis.com/google.rpc.ErrorInfo"
)

type Options struct {
	APIKey string
	// Endpoint overrides the API base URL; it must end with "/".
	Endpoint string
	// Timeout bounds each HTTP call. Zero means no timeout.
	Timeout time.Duration
	// Transport is the base round tripper; nil uses http.DefaultTransport.
	Transport http.RoundTripper
}

type Client struct {
	svc *ytv3.Service
}

var _ comments.Source = (*Client)(nil)

func New(ctx context.Context, opts Options) (*Client, error) {
	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		return nil, fmt.Errorf("youtube: %w: api key is empty", comments.ErrInvalidCredential)
	}
	hc := &http.Client{
		Timeout:   opts.Timeout,
		Transport: &transport.APIKey{Key: key, Transport: opts.Transport},
	}
	copts := []option.ClientOption{option.WithHTTPClient(hc)}
	if opts.Endpoint != "" {
		copts = append(copts, option.WithEndpoint(opts.Endpoint))
	}
	svc, err := ytv3.NewService(ctx, copts...)
	if err != nil {
		return nil, fmt.Errorf("youtube: new service: %w", err)
	}
	return &Client{svc: svc}, nil
}

func (c *Client) ListThreads(ctx context.Context, videoID, pageToken string, pageSize int64) (comments.Page[comments.Thread], error) {
	call := c.svc.CommentThreads.List([]string{"snippet", "replies"}).
		VideoId(videoID).
		MaxResults(pageSize).
		TextFormat("html").
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Do()
	if err != nil {
		return comments.Page[comments.Thread]{}, classify(err)
	}
	out := comments.Page[comments.Thread]{
		Items:         make([]comments.Thread, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}
	for _, it := range resp.Items {
		if it == nil {
			continue
		}
		out.Items = append(out.Items, toThread(it))
	}
	return out, nil
}

func (c *Client) ListReplies(ctx context.Context, parentID, pageToken string, pageSize int64) (comments.Page[comments.Comment], error) {
	call := c.svc.Comments.List([]string{"snippet"}).
		ParentId(parentID).
		MaxResults(pageSize).
		TextFormat("html").
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Do()
	if err != nil {
		return comments.Page[comments.Comment]{}, classify(err)
	}
	out := comments.Page[comments.Comment]{
		Items:         make([]comments.Comment, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}
	for _, it := range resp.Items {
		if it == nil {
			continue
		}
		out.Items = append(out.Items, toComment(it))
	}
	return out, nil
}

func (c *Client) GetVideo(ctx context.Context, videoID string) (comments.Video, error) {
	resp, err := c.svc.Videos.List([]string{"snippet", "status"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return comments.Video{}, classify(err)
	}
	if len(resp.Items) == 0 || resp.Items[0] == nil {
		return comments.Video{}, fmt.Errorf("youtube: %s: %w", videoID, comments.ErrVideoNotFound)
	}
	return toVideo(videoID, resp.Items[0]), nil
}

// classify turns structured API error reasons into domain errors. The
// API error stays in the chain for its message.
func classify(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("youtube: %w", err)
	}
	for _, it := range gerr.Errors {
		switch it.Reason {
		case reasonCommentsDisabled:
			return fmt.Errorf("youtube: %w: %w", comments.ErrCommentsDisabled, err)
		case reasonVideoNotFound:
			return fmt.Errorf("youtube: %w: %w", comments.ErrVideoNotFound, err)
		case reasonKeyInvalid, reasonKeyExpired:
			return fmt.Errorf("youtube: %w: %w", comments.ErrInvalidCredential, err)
		}
	}
	// A bad key is reported as a generic badRequest; the precise code is in
	// the ErrorInfo detail.
	switch errorInfoReason(gerr) {
	case infoAPIKeyInvalid, infoAPIKeyExpired:
		return fmt.Errorf("youtube: %w: %w", comments.ErrInvalidCredential, err)
	}
	return fmt.Errorf("youtube: status %d: %w", gerr.Code, err)
}

func errorInfoReason(gerr *googleapi.Error) string {
	for _, d := range gerr.Details {
		m, ok := d.(map[string]any)
		if !ok || m["@type"] != errorInfoType {
			continue
		}
		if reason, ok := m["reason"].(string); ok {
			return reason
		}
	}
	return ""
}
