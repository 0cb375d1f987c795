package webui

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html>
<head>
    <title>CamView</title>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
        :root {
            --bg-primary: #0f0f0f;
            --bg-secondary: #1a1a1a;
            --bg-tertiary: #242424;
            --border-color: #2a2a2a;
            --text-primary: #e8e8e8;
            --text-secondary: #a0a0a0;
            --accent-green: #10b981;
            --radius-sm: 6px;
        }

        * { margin: 0; padding: 0; box-sizing: border-box; }

        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            background: var(--bg-primary);
            color: var(--text-primary);
            overflow: hidden;
            -webkit-font-smoothing: antialiased;
        }

        #sidebar {
            position: fixed;
            top: 0;
            left: 0;
            bottom: 0;
            width: {{.ExpandedWidth}}px;
            background: var(--bg-secondary);
            border-right: 1px solid var(--border-color);
            overflow-y: auto;
            transition: width 0.2s ease;
        }

        #sidebar.collapsed {
            width: {{.CollapsedWidth}}px;
        }

        #sidebar.collapsed #linksList {
            display: none;
        }

        .toggle {
            width: 100%;
            padding: 12px;
            background: var(--bg-tertiary);
            color: var(--text-primary);
            border: none;
            border-bottom: 1px solid var(--border-color);
            cursor: pointer;
            font-size: 1.1em;
        }

        #linksList {
            list-style: none;
            padding: 8px;
        }

        #linksList a {
            display: block;
            padding: 8px 12px;
            color: var(--text-secondary);
            text-decoration: none;
            border-radius: var(--radius-sm);
            white-space: nowrap;
            overflow: hidden;
            text-overflow: ellipsis;
        }

        #linksList a:hover,
        #linksList a.active {
            background: var(--bg-tertiary);
            color: var(--accent-green);
        }

        #videoFrame {
            position: fixed;
            top: 0;
            bottom: 0;
            height: 100%;
            border: none;
            transition: left 0.2s ease, width 0.2s ease;
        }
    </style>
</head>
<body>
    <div id="sidebar"{{if .State.Collapsed}} class="collapsed"{{end}}>
        <button class="toggle" onclick="toggleSidebar()">&#9776;</button>
        <ul id="linksList">
            {{- range $i, $link := .State.Links}}
            <li><a href="{{$link.Href}}" data-index="{{$i}}"{{if eq $link.Href $.State.Frame.Src}} class="active"{{end}}>{{$link.Text}}</a></li>
            {{- end}}
        </ul>
    </div>
    <iframe id="videoFrame" style="{{.FrameStyle}}"{{with .State.Frame.Src}} src="{{.}}"{{end}}></iframe>

    <script>
        function applyState(state) {
            var sidebar = document.getElementById('sidebar');
            sidebar.classList.toggle('collapsed', state.collapsed);

            var frame = document.getElementById('videoFrame');
            frame.style.left = state.frame.left;
            frame.style.width = state.frame.width;
            if (state.frame.src && frame.getAttribute('src') !== state.frame.src) {
                frame.src = state.frame.src;
            }

            document.querySelectorAll('#linksList a').forEach(function(a) {
                a.classList.toggle('active', a.getAttribute('href') === state.frame.src);
            });
        }

        function post(path) {
            return fetch(path, { method: 'POST' })
                .then(function(resp) { return resp.json(); })
                .then(applyState)
                .catch(function(err) { console.error('Request failed:', path, err); });
        }

        function toggleSidebar() {
            post('/api/sidebar/toggle');
        }

        document.getElementById('linksList').addEventListener('click', function(event) {
            var link = event.target.closest('a');
            if (!link) {
                return;
            }
            event.preventDefault();
            post('/api/links/' + link.dataset.index + '/click');
        });
    </script>
</body>
</html>
`
