package api

import "html/template"

// pageTemplate renders the playable page from a session.Snapshot. The page
// is deliberately dependency-free on the client side: keyboard moves POST
// to /move and reload, and a background poll of /api/state picks up moves
// made from other input sources (joystick, MCP, other browsers).
var pageTemplate = template.Must(template.New("game").Parse(`<!DOCTYPE html>
<html>
<head>
<title>2048</title>
<style>
    table {
        border-collapse: collapse;
        font-family: Arial, sans-serif;
    }
    td {
        border: 1px solid #ccc;
        height: 50px;
        width: 50px;
        text-align: center;
        vertical-align: middle;
        font-size: 24px;
    }
    .tile-0 { background-color: #f4f4f4; }
    .tile-2 { background-color: #eee4da; color: #776e65; }
    .tile-4 { background-color: #ede0c8; color: #776e65; }
    .tile-8 { background-color: #f2b179; color: #f9f6f2; }
    .tile-16 { background-color: #f59563; color: #f9f6f2; }
    .tile-32 { background-color: #f67c5f; color: #f9f6f2; }
    .tile-64 { background-color: #f65e3b; color: #f9f6f2; }
    .tile-128 { background-color: #edcf72; color: #f9f6f2; }
    .tile-256 { background-color: #edcc61; color: #f9f6f2; }
    .tile-512 { background-color: #edc850; color: #f9f6f2; }
    .tile-1024 { background-color: #edc53f; color: #f9f6f2; }
    .tile-2048 { background-color: #edc22e; color: #f9f6f2; }
    #game-over {
        font-family: Arial, sans-serif;
        font-weight: bold;
        margin-top: 12px;
    }
</style>
</head>
<body>
<h1>2048</h1>
<table>
{{range .Grid}}<tr>{{range .}}<td class="tile-{{.}}">{{if .}}{{.}}{{end}}</td>{{end}}</tr>
{{end}}</table>
<div>Score: {{.Score}}<br>High Score: {{.HighScore}}</div>
<div id="game-over" style="display: {{if .GameOver}}block{{else}}none{{end}};">Game Over!<br>Press [Space] on the keyboard or the joystick button to try again</div>
<script>
    const POLL_INTERVAL_MS = 200;
    let lastGrid = {{.Grid}};

    // WASD moves the board, Space restarts once the game is over.
    document.addEventListener('keydown', function(event) {
        const key = event.key.toLowerCase();

        if (['w', 'a', 's', 'd'].includes(key)) {
            event.preventDefault();
            fetch('/move', {
                method: 'POST',
                headers: {'Content-Type': 'application/x-www-form-urlencoded'},
                body: 'direction=' + key
            }).then(function(resp) {
                if (resp.ok) {
                    location.reload();
                }
            });
        }

        if (event.code === 'Space' && document.getElementById('game-over').style.display === 'block') {
            event.preventDefault();
            fetch('/restart', {method: 'POST'}).then(function(resp) {
                if (resp.ok) {
                    location.reload();
                }
            });
        }
    });

    // Background poll so moves made through other input sources show up
    // without a manual refresh.
    function pollState() {
        fetch('/api/state').then(function(resp) {
            return resp.json();
        }).then(function(state) {
            if (JSON.stringify(state.grid) !== JSON.stringify(lastGrid)) {
                location.reload();
            }
            setTimeout(pollState, POLL_INTERVAL_MS);
        }).catch(function() {
            setTimeout(pollState, POLL_INTERVAL_MS);
        });
    }
    pollState();
</script>
</body>
</html>
`))
