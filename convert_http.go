package notetex

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnsupportedContentType reports a fetched document that is not text.
var ErrUnsupportedContentType = errors.New("unsupported content type")

// HTTPConvertRequest configures HTTPConvert.
type HTTPConvertRequest struct {
	URL     string
	Client  *http.Client
	Writer  io.Writer
	Options []Option
}

// HTTPConvert fetches a notes document over HTTP(S) and converts it like
// Convert. The response must be text/* or untyped. Warnings passed to the
// WithWarningHandler callback name the URL the document came from.
func HTTPConvert(ctx context.Context, req HTTPConvertRequest) error {
	if req.Writer == nil {
		return errors.New("convert http: writer is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		return errors.Wrap(err, "convert http")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Errorf("convert http: unsupported scheme %q", u.Scheme)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return errors.Wrap(err, "convert http")
	}
	httpReq.Header.Set("Accept", "text/plain, text/markdown;q=0.9, text/*;q=0.8")
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return errors.Wrap(err, "convert http")
	}
	defer resp.Body.Close()

	source := u.String()
	if resp.Request != nil && resp.Request.URL != nil {
		source = resp.Request.URL.String()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("convert http: %s: status %s", source, resp.Status)
	}
	if err := checkContentType(resp.Header.Get("Content-Type")); err != nil {
		return errors.Wrapf(err, "convert http: %s", source)
	}
	err = Convert(ConvertRequest{
		Reader:  resp.Body,
		Writer:  req.Writer,
		Options: withWarningSource(req.Options, source),
	})
	return errors.Wrap(err, source)
}

func checkContentType(value string) error {
	if value == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return errors.Wrapf(ErrUnsupportedContentType, "%q", value)
	}
	if !strings.HasPrefix(mediaType, "text/") {
		return errors.Wrap(ErrUnsupportedContentType, mediaType)
	}
	return nil
}

// withWarningSource prefixes warnings with the document's source.
func withWarningSource(opts []Option, source string) []Option {
	warn := newConfig(opts).warn
	if warn == nil {
		return opts
	}
	out := make([]Option, 0, len(opts)+1)
	out = append(out, opts...)
	return append(out, WithWarningHandler(func(err error) {
		warn(errors.Wrap(err, source))
	}))
}
