// Package scrape 웹 페이지에서 CSS 셀렉터와 일치하는 노드의 텍스트를 수집하는 작업을 제공합니다.
//
//	{"type": "scrape", "args": ["https://example.com", "h1"]}
package scrape

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	apperrors "github.com/darkkaiser/job-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/fetcher"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/job"
	"github.com/darkkaiser/job-dispatcher/internal/service/dispatch/task"
	"github.com/darkkaiser/job-dispatcher/pkg/strutil"
	"golang.org/x/net/html/charset"
)

var (
	ErrURLRequired      = apperrors.New(apperrors.InvalidInput, "url is required")
	ErrSelectorRequired = apperrors.New(apperrors.InvalidInput, "selector is required")
)

func init() {
	job.Register(job.Scrape, NewFactory(Options{}))
}

// Options scrape 작업 생성 옵션입니다.
type Options struct {
	// Fetcher nil이면 Timeout, MaxBodyBytes로 기본 체인을 구성합니다.
	Fetcher fetcher.Fetcher

	Timeout      time.Duration
	MaxBodyBytes int64
}

func (o Options) withDefaults() Options {
	if o.Fetcher == nil {
		o.Fetcher = fetcher.New(fetcher.Options{Timeout: o.Timeout, MaxBodyBytes: o.MaxBodyBytes})
	}
	return o
}

// Runner 수집할 페이지 주소와 셀렉터를 보관합니다.
type Runner struct {
	url      string
	selector string
	fetcher  fetcher.Fetcher
}

var _ job.Runner = (*Runner)(nil)

// NewFactory args: [url string, selector string]
func NewFactory(opts Options) job.Factory {
	opts = opts.withDefaults()

	return func(args []any) (job.Runner, error) {
		var url, selector string
		if _, err := job.DecodeArg(args, 0, &url); err != nil || url == "" {
			return nil, ErrURLRequired
		}
		if _, err := job.DecodeArg(args, 1, &selector); err != nil || strings.TrimSpace(selector) == "" {
			return nil, ErrSelectorRequired
		}

		return &Runner{url: url, selector: selector, fetcher: opts.Fetcher}, nil
	}
}

// NewTask 결과는 일치한 노드의 공백을 제거한 텍스트 목록([]string)입니다.
func (r *Runner) NewTask(ctx context.Context) *task.Task {
	return task.Start(ctx, func(ctx context.Context) (any, error) {
		doc, err := r.fetchDocument(ctx)
		if err != nil {
			return nil, err
		}

		texts := make([]string, 0)
		doc.Find(r.selector).Each(func(_ int, s *goquery.Selection) {
			texts = append(texts, strutil.NormalizeSpaces(s.Text()))
		})

		return texts, nil
	})
}

func (r *Runner) fetchDocument(ctx context.Context) (*goquery.Document, error) {
	resp, err := fetcher.Get(ctx, r.fetcher, r.url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := parseHTML(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "HTML 문서를 파싱하지 못했습니다")
	}
	doc.Url = resp.Request.URL

	return doc, nil
}

// parseHTML 본문 앞부분과 Content-Type으로 인코딩을 판단하여 UTF-8로 변환한 뒤 파싱한다.
func parseHTML(r io.Reader, contentType string) (*goquery.Document, error) {
	br := bufio.NewReader(r)
	peek, _ := br.Peek(1024)

	var utf8Reader io.Reader = br
	if e, _, _ := charset.DetermineEncoding(peek, contentType); e != nil {
		utf8Reader = e.NewDecoder().Reader(br)
	}

	return goquery.NewDocumentFromReader(utf8Reader)
}
