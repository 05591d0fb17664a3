package site

// pageTemplate is the Go html/template for each documentation page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} · {{.ProjectName}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body>
<div id="container" data-build="{{.BuildID}}" data-section-tag="{{.SectionTag}}" data-item-tag="{{.ItemTag}}">
  <aside id="sidebar-panel">
    <div class="sidebar-header">
      <a href="{{.BasePath}}index.html" class="project-title">{{.ProjectName}}</a>
      <input type="text" id="search-input" placeholder="Filter headings..." autocomplete="off">
    </div>
    <nav class="page-index">
      {{.PagesHTML}}
    </nav>
    <nav id="sidebar">
      {{.NavHTML}}
    </nav>
  </aside>
  <div id="mask"></div>
  <main id="content">
    <div class="top-bar">
      <button id="disclosure" aria-label="Toggle sidebar">
        <svg width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <line x1="3" y1="6" x2="21" y2="6"/><line x1="3" y1="12" x2="21" y2="12"/><line x1="3" y1="18" x2="21" y2="18"/>
        </svg>
      </button>
      {{if .LogoFile}}<img id="top" src="{{.BasePath}}{{.LogoFile}}" alt="{{.ProjectName}}" class="logo">{{else}}<span id="top"></span>{{end}}
      <button class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">&#9680;</button>
    </div>
    <article class="page-content">
      {{.Content}}
    </article>
  </main>
</div>
<script src="{{.BasePath}}script.js"></script>
</body>
</html>`

// cssContent is the stylesheet of the documentation site.
const cssContent = `:root {
  --bg: #ffffff;
  --fg: #1f2328;
  --muted: #59636e;
  --border: #d1d9e0;
  --accent: #0969da;
  --sidebar-bg: #f6f8fa;
  --sidebar-width: 280px;
  --invalid: #cf222e;
}

[data-theme="dark"] {
  --bg: #0d1117;
  --fg: #e6edf3;
  --muted: #9198a1;
  --border: #3d444d;
  --accent: #4493f8;
  --sidebar-bg: #151b23;
}

* { box-sizing: border-box; }

html, body {
  margin: 0;
  height: 100%;
  background: var(--bg);
  color: var(--fg);
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif;
}

#container {
  display: grid;
  grid-template-columns: var(--sidebar-width) 1fr;
  height: 100vh;
}

#sidebar-panel {
  background: var(--sidebar-bg);
  border-right: 1px solid var(--border);
  overflow-y: auto;
  padding: 16px;
}

.sidebar-header { margin-bottom: 16px; }
.project-title { display: block; font-weight: 600; font-size: 1.1em; color: var(--fg); text-decoration: none; margin-bottom: 8px; }
#search-input { width: 100%; padding: 6px 8px; border: 1px solid var(--border); border-radius: 6px; background: var(--bg); color: var(--fg); }

ul.pages { list-style: none; margin: 0 0 16px; padding-left: 12px; }
.page-index > ul.pages { padding-left: 0; }
.pages-page a { color: var(--muted); text-decoration: none; }
.pages-page.active a { color: var(--accent); font-weight: 600; }

#sidebar a { display: block; text-decoration: none; color: var(--muted); padding: 3px 0; }
#sidebar a.hidden { display: none; }
.sidebar-heading { font-weight: 600; }
.sidebar-item { padding-left: 14px !important; font-size: 0.92em; }
.sidebar-section { display: none; }
.sidebar-heading.active + .sidebar-section { display: block; }
#sidebar.filtering .sidebar-section { display: block; }
#sidebar a.active { color: var(--accent); }

#content { overflow-y: auto; padding: 0 32px 64px; }
.top-bar { display: flex; align-items: center; gap: 12px; padding: 12px 0; }
.logo { height: 32px; }
.theme-toggle, #disclosure { background: none; border: none; color: var(--fg); cursor: pointer; font-size: 1.2em; }
#disclosure { display: none; }
.page-content { max-width: 860px; line-height: 1.6; }
.page-content pre { padding: 12px; border-radius: 6px; overflow-x: auto; border: 1px solid var(--border); }
.page-content pre.invalid { border-color: var(--invalid); border-left-width: 4px; }

#mask { display: none; }

@media (max-width: 860px) {
  #container { grid-template-columns: 1fr; }
  #disclosure { display: inline-block; }
  #sidebar-panel {
    position: fixed; top: 0; left: 0; bottom: 0; width: var(--sidebar-width);
    transform: translateX(-100%); transition: transform 0.2s ease; z-index: 20;
  }
  #container.reveal-sidebar #sidebar-panel { transform: none; }
  #container.reveal-sidebar #mask {
    display: block; position: fixed; inset: 0; background: rgba(0, 0, 0, 0.4); z-index: 10;
  }
}
`

// jsContent drives the sidebar in the browser: scroll-synced highlighting,
// the disclosure toggle, heading filter, theme, and live reload.
const jsContent = `(function() {
  "use strict";

  var root = document.documentElement;
  var container = document.getElementById("container");
  var sidebar = document.getElementById("sidebar");
  var content = document.getElementById("content");
  if (!container || !sidebar || !content) return;

  var sectionTag = (container.getAttribute("data-section-tag") || "h2").toUpperCase();
  var itemTag = (container.getAttribute("data-item-tag") || "h3").toUpperCase();

  // ===== Heading groups =====
  var headings = [];
  var headingGroup = {};
  var currentGroup = null;
  content.querySelectorAll(sectionTag + "[id]," + itemTag + "[id]").forEach(function(h) {
    if (h.tagName === sectionTag) {
      currentGroup = h.id;
    } else if (currentGroup === null) {
      return;
    }
    if (!document.getElementById(h.id + "-item")) return;
    headings.push(h);
    headingGroup[h.id] = currentGroup;
  });

  // ===== Scroll sync =====
  function viewportHeight() {
    return window.visualViewport ? window.visualViewport.height : window.innerHeight;
  }

  function findWinner() {
    var height = viewportHeight();
    var winner = null;
    for (var i = 0; i < headings.length; i++) {
      var top = headings[i].getBoundingClientRect().top;
      if (top > height) break;
      winner = headings[i].id;
      if (top > 0) break;
    }
    return winner;
  }

  function sync() {
    var winner = findWinner();
    if (winner === null) return;
    var entry = document.getElementById(winner + "-item");
    var group = document.getElementById(headingGroup[winner] + "-item");
    if (!entry || !group) return;
    sidebar.querySelectorAll(".active").forEach(function(el) { el.classList.remove("active"); });
    entry.classList.add("active");
    group.classList.add("active");
  }

  var ticking = false;
  content.addEventListener("scroll", function() {
    if (ticking) return;
    ticking = true;
    window.requestAnimationFrame(function() {
      sync();
      ticking = false;
    });
  });
  sync();

  // ===== Disclosure =====
  function toggleSidebar() {
    container.classList.toggle("reveal-sidebar");
  }
  var disclosure = document.getElementById("disclosure");
  var mask = document.getElementById("mask");
  if (disclosure) disclosure.addEventListener("click", toggleSidebar);
  if (mask) mask.addEventListener("click", toggleSidebar);

  // ===== Heading filter =====
  var searchInput = document.getElementById("search-input");
  if (searchInput) {
    searchInput.addEventListener("input", function() {
      var query = this.value.toLowerCase().trim();
      sidebar.classList.toggle("filtering", query !== "");
      sidebar.querySelectorAll("a").forEach(function(a) {
        var match = query === "" || a.textContent.toLowerCase().indexOf(query) !== -1;
        a.classList.toggle("hidden", !match);
      });
    });
  }

  // ===== Theme =====
  function setTheme(theme) {
    root.setAttribute("data-theme", theme);
    try { localStorage.setItem("sidenav-theme", theme); } catch (e) {}
  }
  try {
    var stored = localStorage.getItem("sidenav-theme");
    if (stored) setTheme(stored);
  } catch (e) {}
  var themeToggle = document.getElementById("theme-toggle");
  if (themeToggle) {
    themeToggle.addEventListener("click", function() {
      setTheme(root.getAttribute("data-theme") === "dark" ? "light" : "dark");
    });
  }

  // ===== Live reload (preview server only) =====
  var build = container.getAttribute("data-build");
  if (build && window.WebSocket && /^https?:$/.test(location.protocol)) {
    var scheme = location.protocol === "https:" ? "wss://" : "ws://";
    try {
      var ws = new WebSocket(scheme + location.host + "/livereload");
      ws.onmessage = function(ev) {
        try {
          var msg = JSON.parse(ev.data);
          if (msg.build_id && msg.build_id !== build) location.reload();
        } catch (e) {}
      };
    } catch (e) {}
  }
})();
`
