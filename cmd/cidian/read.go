package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/weiyin/cidian/pkg/ingest"
)

// maxBodySize bounds article downloads so an untrusted URL cannot OOM us.
const maxBodySize = 10 * 1024 * 1024

func newReadCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <url>",
		Short: "Fetch an article and ingest every sentence into the vocabulary store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawURL := args[0]

			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, rawURL, nil)
			if err != nil {
				return fmt.Errorf("build request: %w", err)
			}
			// Some article hosts reject requests without a browser UA.
			req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
			req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")

			client := &http.Client{Timeout: 30 * time.Second}
			resp, err := client.Do(req)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", rawURL, err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
			}

			body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
			if err != nil {
				return fmt.Errorf("read body: %w", err)
			}
			if len(body) >= maxBodySize {
				return fmt.Errorf("article exceeds %d byte limit", maxBodySize)
			}

			parsed, _ := url.Parse(rawURL)
			article, err := readability.FromReader(bytes.NewReader(body), parsed)
			if err != nil {
				return fmt.Errorf("extract article: %w", err)
			}
			a.log.Info("article extracted",
				zap.String("title", article.Title), zap.Int("chars", len(article.TextContent)))

			ig := ingest.NewIngester(a.pipeline, a.log)
			ig.Workers = a.cfg.Ingest.Workers
			stats, err := ig.Ingest(cmd.Context(), rawURL, article.TextContent)
			if err != nil {
				return err
			}
			cmd.Printf("ingested %d sentences, %d segments (%d unknown, %d failed)\n",
				stats.Sentences, stats.Segments, stats.Unknown, stats.Failed)
			return nil
		},
	}
	return cmd
}
