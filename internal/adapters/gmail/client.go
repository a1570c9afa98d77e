// Package gmail implements the mailbox capability against the Gmail API.
package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/jfmartin/mail-harvester/internal/config"
	"github.com/jfmartin/mail-harvester/internal/core"
	"github.com/jfmartin/mail-harvester/internal/utils"
)

const user = "me"

// Client is a Gmail implementation of the core.Mailbox interface.
type Client struct {
	srv           *gmailapi.Service
	label         string
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewClient establishes a read-only Gmail session. A failure here is fatal
// to startup, not to a single cycle.
func NewClient(ctx context.Context, cfg config.GmailConfig, logger *zap.Logger, textProcessor *utils.TextProcessor) (*Client, error) {
	secret, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, &core.AuthError{Err: fmt.Errorf("unable to read client secret file: %w", err)}
	}
	oauthConfig, err := google.ConfigFromJSON(secret, gmailapi.GmailReadonlyScope)
	if err != nil {
		return nil, &core.AuthError{Err: fmt.Errorf("unable to parse client secret file: %w", err)}
	}

	httpClient, err := oauthClient(ctx, oauthConfig, cfg.TokenFile)
	if err != nil {
		return nil, &core.AuthError{Err: err}
	}

	srv, err := gmailapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, &core.AuthError{Err: fmt.Errorf("unable to create Gmail service: %w", err)}
	}

	label := cfg.Label
	if label == "" {
		label = "INBOX"
	}

	return &Client{
		srv:           srv,
		label:         label,
		logger:        logger,
		textProcessor: textProcessor,
	}, nil
}

// oauthClient builds an authorized HTTP client from a saved token, running
// the interactive authorization flow when no token exists yet.
func oauthClient(ctx context.Context, oauthConfig *oauth2.Config, tokenFile string) (*http.Client, error) {
	token, err := tokenFromFile(tokenFile)
	if err != nil {
		token, err = tokenFromWeb(ctx, oauthConfig)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenFile, token); err != nil {
			return nil, err
		}
	}
	return oauthConfig.Client(ctx, token), nil
}

func tokenFromWeb(ctx context.Context, oauthConfig *oauth2.Config) (*oauth2.Token, error) {
	authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}

	token, err := oauthConfig.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token: %w", err)
	}
	return token, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to save oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// ListMessageIDs returns identifiers of messages in the configured label
// matching the query, newest first.
func (c *Client) ListMessageIDs(ctx context.Context, query string, max int64) ([]string, error) {
	call := c.srv.Users.Messages.List(user).
		LabelIds(c.label).
		MaxResults(max).
		Context(ctx)
	if query != "" {
		call = call.Q(query)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, &core.TransportError{Op: "list", Err: err}
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		ids = append(ids, m.Id)
	}
	c.logger.Debug("Listed messages", zap.String("query", query), zap.Int("count", len(ids)))
	return ids, nil
}

// GetMessage fetches a full message and reduces it to the structural form
// the sync engine consumes.
func (c *Client) GetMessage(ctx context.Context, id string) (*core.Message, error) {
	msg, err := c.srv.Users.Messages.Get(user, id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, &core.TransportError{Op: "get message", Err: err}
	}

	out := &core.Message{
		ID:      msg.Id,
		Snippet: c.textProcessor.SanitizeUTF8(msg.Snippet),
	}

	if msg.Payload != nil {
		for _, header := range msg.Payload.Headers {
			switch header.Name {
			case "From":
				out.From = header.Value
			case "Subject":
				out.Subject = header.Value
			case "Date":
				out.Date = header.Value
			}
		}
		for _, part := range msg.Payload.Parts {
			p := core.MessagePart{Filename: part.Filename}
			if part.Body != nil {
				p.AttachmentID = part.Body.AttachmentId
			}
			out.Parts = append(out.Parts, p)
		}
	}

	return out, nil
}

// GetAttachment fetches and decodes an attachment payload.
func (c *Client) GetAttachment(ctx context.Context, messageID, attachmentID string) ([]byte, error) {
	att, err := c.srv.Users.Messages.Attachments.Get(user, messageID, attachmentID).Context(ctx).Do()
	if err != nil {
		return nil, &core.TransportError{Op: "get attachment", Err: err}
	}

	// The API returns URL-safe base64, sometimes without padding.
	data, err := base64.URLEncoding.DecodeString(att.Data)
	if err != nil {
		data, err = base64.RawURLEncoding.DecodeString(att.Data)
	}
	if err != nil {
		return nil, &core.TransportError{Op: "decode attachment", Err: err}
	}
	return data, nil
}
