package webui

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/mmuteeullah/CamView/internal/camera"
	"github.com/mmuteeullah/CamView/internal/config"
	"github.com/mmuteeullah/CamView/internal/health"
	"github.com/mmuteeullah/CamView/internal/viewer"
)

const camerasTxt = "10.0.0.6\tYard Cam\n10.0.0.5\tGate Cam\nnot a camera\n"

type testEnv struct {
	server  *httptest.Server
	ctrl    *viewer.Controller
	fetches *atomic.Int32
}

// newTestEnv serves body (or status, when non-zero) as the camera list.
func newTestEnv(t *testing.T, body string, status int, mutate func(*config.Config)) *testEnv {
	t.Helper()
	return newTestEnvWithSource(t, func(w http.ResponseWriter, r *http.Request) {
		if status != 0 {
			w.WriteHeader(status)
			return
		}
		io.WriteString(w, body)
	}, mutate)
}

func newTestEnvWithSource(t *testing.T, handler http.HandlerFunc, mutate func(*config.Config)) *testEnv {
	t.Helper()

	fetches := &atomic.Int32{}
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		handler(w, r)
	}))
	t.Cleanup(source.Close)

	cfg := config.Default()
	cfg.Viewer.Source = source.URL + "/cameras.txt"
	if mutate != nil {
		mutate(cfg)
	}

	ctrl := viewer.NewController(
		viewer.NewSource(cfg.Viewer.Source, 0),
		camera.DefaultProxy,
		viewer.DefaultLayout,
		false,
		zerolog.Nop(),
	)
	monitor := health.NewMonitor("test", cfg.Viewer.Source, zerolog.Nop())
	ctrl.Builder.SetObserver(monitor)

	srv := httptest.NewServer(NewServer(cfg, ctrl, monitor, zerolog.Nop()).Handler())
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, ctrl: ctrl, fetches: fetches}
}

func (e *testEnv) post(t *testing.T, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(e.server.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeState(t *testing.T, resp *http.Response) viewer.State {
	t.Helper()
	var state viewer.State
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	return state
}

type anchor struct {
	text, href string
}

// parsePage returns the sidebar class, the iframe style and the list anchors.
func parsePage(t *testing.T, r io.Reader) (sidebarClass, frameStyle string, links []anchor) {
	t.Helper()
	doc, err := html.Parse(r)
	require.NoError(t, err)

	attr := func(n *html.Node, key string) string {
		for _, a := range n.Attr {
			if a.Key == key {
				return a.Val
			}
		}
		return ""
	}

	var walk func(n *html.Node, inList bool)
	walk = func(n *html.Node, inList bool) {
		if n.Type == html.ElementNode {
			switch {
			case attr(n, "id") == "sidebar":
				sidebarClass = attr(n, "class")
			case attr(n, "id") == "videoFrame":
				frameStyle = attr(n, "style")
			case attr(n, "id") == "linksList":
				inList = true
			case inList && n.Data == "a" && n.FirstChild != nil:
				links = append(links, anchor{text: n.FirstChild.Data, href: attr(n, "href")})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inList)
		}
	}
	walk(doc, false)
	return sidebarClass, frameStyle, links
}

func TestIndexRendersSortedLinks(t *testing.T) {
	env := newTestEnv(t, camerasTxt, 0, nil)

	resp, err := http.Get(env.server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	class, style, links := parsePage(t, resp.Body)
	assert.Empty(t, class)
	assert.Contains(t, style, "left: 250px")
	assert.Contains(t, style, "width: calc(100% - 250px)")
	assert.Equal(t, []anchor{
		{"Gate Cam", "http://192.168.129.200:8889/proxy_10.0.0.5/"},
		{"Yard Cam", "http://192.168.129.200:8889/proxy_10.0.0.6/"},
	}, links)
}

func TestIndexReloadDoesNotDuplicateLinks(t *testing.T) {
	env := newTestEnv(t, camerasTxt, 0, nil)

	for i := 0; i < 2; i++ {
		resp, err := http.Get(env.server.URL + "/")
		require.NoError(t, err)
		_, _, links := parsePage(t, resp.Body)
		resp.Body.Close()
		assert.Len(t, links, 2)
	}
	assert.EqualValues(t, 2, env.fetches.Load())
}

func TestIndexWithFailingSource(t *testing.T) {
	env := newTestEnv(t, "", http.StatusNotFound, nil)

	resp, err := http.Get(env.server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, _, links := parsePage(t, resp.Body)
	assert.Empty(t, links)

	healthResp, err := http.Get(env.server.URL + "/health")
	require.NoError(t, err)
	defer healthResp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, healthResp.StatusCode)
}

func TestIndexRendersWhileSourceHangs(t *testing.T) {
	release := make(chan struct{})
	env := newTestEnvWithSource(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
	}, func(c *config.Config) {
		c.Viewer.PageLoadWait = 50
	})
	// runs before the source server closes
	t.Cleanup(func() { close(release) })

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(env.server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	class, style, links := parsePage(t, resp.Body)
	assert.Empty(t, class)
	assert.Contains(t, style, "left: 250px")
	assert.Empty(t, links)

	state := decodeState(t, env.post(t, "/api/sidebar/toggle", ""))
	assert.True(t, state.Collapsed)
}

func TestIndexAbortDoesNotFailBuild(t *testing.T) {
	release := make(chan struct{})
	env := newTestEnvWithSource(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		io.WriteString(w, camerasTxt)
	}, nil)

	client := &http.Client{Timeout: 100 * time.Millisecond}
	_, err := client.Get(env.server.URL + "/")
	require.Error(t, err)
	close(release)

	assert.Eventually(t, func() bool {
		return env.ctrl.Page.Len() == 2
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get(env.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestIndexRefreshIsRateLimited(t *testing.T) {
	env := newTestEnv(t, camerasTxt, 0, func(c *config.Config) {
		c.Viewer.RefreshRate = 0.001
		c.Viewer.RefreshBurst = 1
	})

	for i := 0; i < 3; i++ {
		resp, err := http.Get(env.server.URL + "/")
		require.NoError(t, err)
		_, _, links := parsePage(t, resp.Body)
		resp.Body.Close()
		assert.Len(t, links, 2)
	}
	assert.EqualValues(t, 1, env.fetches.Load())
}

func TestToggleSidebar(t *testing.T) {
	env := newTestEnv(t, camerasTxt, 0, nil)

	state := decodeState(t, env.post(t, "/api/sidebar/toggle", ""))
	assert.True(t, state.Collapsed)
	assert.Equal(t, viewer.Frame{Left: "60px", Width: "calc(100% - 60px)"}, state.Frame)

	resp, err := http.Get(env.server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	class, style, _ := parsePage(t, resp.Body)
	assert.Equal(t, "collapsed", class)
	assert.Contains(t, style, "left: 60px")

	state = decodeState(t, env.post(t, "/api/sidebar/toggle", ""))
	assert.False(t, state.Collapsed)
	assert.Equal(t, viewer.Frame{Left: "250px", Width: "calc(100% - 250px)"}, state.Frame)
}

func TestClickSwitchesVideo(t *testing.T) {
	env := newTestEnv(t, camerasTxt, 0, nil)

	refresh := env.post(t, "/api/links/refresh", "")
	require.Equal(t, http.StatusOK, refresh.StatusCode)

	state := decodeState(t, env.post(t, "/api/links/1/click", ""))
	assert.Equal(t, "http://192.168.129.200:8889/proxy_10.0.0.6/", state.Frame.Src)

	assert.Equal(t, http.StatusNotFound, env.post(t, "/api/links/7/click", "").StatusCode)
	assert.Equal(t, http.StatusBadRequest, env.post(t, "/api/links/abc/click", "").StatusCode)
}

func TestVideoEndpoint(t *testing.T) {
	env := newTestEnv(t, camerasTxt, 0, nil)

	state := decodeState(t, env.post(t, "/api/video", `{"src":"http://example.test/cam/"}`))
	assert.Equal(t, "http://example.test/cam/", state.Frame.Src)
	assert.Equal(t, "http://example.test/cam/", env.ctrl.Page.Snapshot().Frame.Src)

	assert.Equal(t, http.StatusBadRequest, env.post(t, "/api/video", "{").StatusCode)
}

func TestRefreshReportsFailure(t *testing.T) {
	env := newTestEnv(t, "", http.StatusNotFound, nil)

	resp := env.post(t, "/api/links/refresh", "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "Not Found")
	assert.Zero(t, env.ctrl.Page.Len())
}

func TestRefreshReturnsCount(t *testing.T) {
	env := newTestEnv(t, camerasTxt, 0, nil)

	resp := env.post(t, "/api/links/refresh", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body["cameras"])

	stateResp, err := http.Get(env.server.URL + "/api/state")
	require.NoError(t, err)
	defer stateResp.Body.Close()
	state := decodeState(t, stateResp)
	require.Len(t, state.Links, 2)
	assert.Equal(t, "Gate Cam", state.Links[0].Text)
}
