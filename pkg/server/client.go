package server

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"
)

// clientJS forwards activations of elements that carry a data-on-<event>
// marker and swaps the page root when the server reports a change. Events
// raised while the socket is (re)connecting are queued and sent once it
// opens. A closed socket is reopened with capped exponential backoff.
const clientJS = `(function () {
  "use strict";
  var script = document.currentScript;
  var path = script && script.getAttribute("data-live");
  if (!path || !window.WebSocket) return;

  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  var url = proto + "//" + location.host + path;
  var root = document.getElementById("app");
  var ws = null;
  var queue = [];
  var retries = 0;

  function connect() {
    ws = new WebSocket(url);
    ws.onopen = function () {
      retries = 0;
      while (queue.length) ws.send(queue.shift());
    };
    ws.onmessage = function (msg) {
      var reply = JSON.parse(msg.data);
      if (reply.error) console.warn("live:", reply.error);
      if (reply.changed && reply.html && root) root.innerHTML = reply.html;
    };
    ws.onclose = function () {
      var delay = Math.min(10000, 250 * Math.pow(2, retries++));
      setTimeout(connect, delay);
    };
  }

  function send(msg) {
    if (ws && ws.readyState === WebSocket.OPEN) ws.send(msg);
    else queue.push(msg);
  }

  ["click", "submit", "reset"].forEach(function (type) {
    document.addEventListener(type, function (e) {
      var el = e.target.closest && e.target.closest("[data-on-" + type + "]");
      if (!el) return;
      e.preventDefault();
      send(JSON.stringify({ hid: el.getAttribute("data-hid"), event: type }));
    }, true);
  });

  connect();
})();
`

var clientETag = func() string {
	sum := sha256.Sum256([]byte(clientJS))
	return fmt.Sprintf("%q", fmt.Sprintf("%x", sum[:]))
}()

func (s *Server) serveClientScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("ETag", clientETag)
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=0, must-revalidate")

	if etagMatches(r.Header.Get("If-None-Match"), clientETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(clientJS))
}

func etagMatches(ifNoneMatchHeader, etag string) bool {
	if ifNoneMatchHeader == "" || etag == "" {
		return false
	}
	// Handle lists: If-None-Match: "abc", W/"def"
	for _, part := range strings.Split(ifNoneMatchHeader, ",") {
		candidate := strings.TrimSpace(part)
		if candidate == etag {
			return true
		}
		if strings.HasPrefix(candidate, "W/") && strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
