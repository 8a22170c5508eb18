package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultAnalysisModel = "gpt-4o"
	defaultEditModel     = "gpt-image-1"
	defaultTimeout       = 60 * time.Second
)

// Config describes how the OpenAI client should be initialised.
type Config struct {
	APIKey        string
	AnalysisModel string
	EditModel     string
	BaseURL       string
	Timeout       time.Duration
	HTTPClient    *http.Client
}

// Client wraps the OpenAI API for the two calls the pipeline makes:
// vision-based face analysis and masked image editing.
type Client struct {
	api           *openai.Client
	analysisModel string
	editModel     string
}

// NewClient builds a Client from config, applying defaults for anything unset.
func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("ai: api key must not be empty")
	}

	analysisModel := strings.TrimSpace(cfg.AnalysisModel)
	if analysisModel == "" {
		analysisModel = defaultAnalysisModel
	}
	editModel := strings.TrimSpace(cfg.EditModel)
	if editModel == "" {
		editModel = defaultEditModel
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		clientCfg.BaseURL = strings.TrimRight(base, "/")
	}
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	} else {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		clientCfg.HTTPClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		api:           openai.NewClientWithConfig(clientCfg),
		analysisModel: analysisModel,
		editModel:     editModel,
	}, nil
}

// AnalyzeFace asks the vision model how many faces the photo contains and how
// clear they are. Callers decide what to do when the call itself fails; this
// method never invents a permissive answer on its own.
func (c *Client) AnalyzeFace(ctx context.Context, pngData []byte) (*FaceReport, error) {
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.analysisModel,
		MaxTokens: 300,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: faceAnalysisPrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: dataURL,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ai: face analysis request: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, errors.New("ai: empty face analysis response")
	}

	return parseFaceReport(resp.Choices[0].Message.Content), nil
}

// EditResult is one output variation from an image edit call.
type EditResult struct {
	URL  string
	Data []byte
}

// EditImage submits a masked edit request and returns every usable variation.
// The mask may be nil; the model then considers the whole image editable.
func (c *Client) EditImage(ctx context.Context, image, mask []byte, prompt string, n int) ([]EditResult, error) {
	if n <= 0 {
		n = 1
	}

	req := openai.ImageEditRequest{
		Image:  openai.WrapReader(bytes.NewReader(image), "image.png", "image/png"),
		Prompt: prompt,
		Model:  c.editModel,
		N:      n,
		Size:   openai.CreateImageSize1024x1024,
	}
	if len(mask) > 0 {
		req.Mask = openai.WrapReader(bytes.NewReader(mask), "mask.png", "image/png")
	}

	resp, err := c.api.CreateEditImage(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("ai: image edit request: %w", err)
	}

	results := make([]EditResult, 0, len(resp.Data))
	for _, item := range resp.Data {
		switch {
		case item.URL != "":
			results = append(results, EditResult{URL: item.URL})
		case item.B64JSON != "":
			data, decErr := base64.StdEncoding.DecodeString(item.B64JSON)
			if decErr != nil {
				continue
			}
			results = append(results, EditResult{Data: data})
		}
	}
	if len(results) == 0 {
		return nil, errors.New("ai: image edit returned no usable output")
	}
	return results, nil
}
