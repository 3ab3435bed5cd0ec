package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const page = `<!DOCTYPE html>
<html><head>
<title>Acme CRM | Grow Better</title>
<meta name="description" content="All-in-one CRM for growing teams.">
</head>
<body>
<h1>  Grow your business </h1>
<p>Some text</p>
<h1>Marketing <em>automation</em></h1>
<span class="price">$49/mo</span>
</body></html>`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_Fetch(t *testing.T) {
	srv := serve(t, http.StatusOK, page)

	snap, err := NewFetcher().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, snap.URL)
	assert.Equal(t, "Acme CRM | Grow Better", snap.Title)
	assert.Equal(t, "All-in-one CRM for growing teams.", snap.MetaDescription)
	assert.Equal(t, []string{"Grow your business", "Marketing automation"}, snap.Headings)
}

func TestFetcher_FetchNon2xx(t *testing.T) {
	srv := serve(t, http.StatusNotFound, "gone")

	_, err := NewFetcher().Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetchFailed))

	var ff *FetchFailedError
	require.True(t, errors.As(err, &ff))
	assert.Equal(t, srv.URL, ff.URL)
	assert.Contains(t, err.Error(), "404")
}

func TestFetcher_FetchUnreachable(t *testing.T) {
	_, err := NewFetcher().Fetch(context.Background(), "http://127.0.0.1:1/")
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestExtract_MissingElements(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><body><p>no head</p></body></html>`))
	require.NoError(t, err)

	snap := Extract(doc)
	assert.Equal(t, "", snap.Title)
	assert.Equal(t, "", snap.MetaDescription)
	assert.NotNil(t, snap.Headings)
	assert.Empty(t, snap.Headings)
}

func TestExtract_TitleVariants(t *testing.T) {
	for _, title := range []string{"Home", "Pricing — Plans & Features", "  padded  "} {
		doc, err := html.Parse(strings.NewReader("<html><head><title>" + html.EscapeString(title) + "</title></head></html>"))
		require.NoError(t, err)
		assert.Equal(t, title, Extract(doc).Title)
	}
}

func TestFetcher_Price(t *testing.T) {
	f := NewFetcher()

	withPrice := serve(t, http.StatusOK, page)
	assert.Equal(t, "$49/mo", f.Price(context.Background(), withPrice.URL))

	noPrice := serve(t, http.StatusOK, "<html><body>contact sales</body></html>")
	assert.Equal(t, PriceNotFound, f.Price(context.Background(), noPrice.URL))

	broken := serve(t, http.StatusInternalServerError, "")
	assert.True(t, strings.HasPrefix(f.Price(context.Background(), broken.URL), "Error: "))
}
