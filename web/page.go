package web

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/yosssi/gohtml"
)

// dashboardHTML is the single-page dashboard. It talks to the JSON API with the
// bearer token handed out by /api/login, so the page itself carries no product data.
const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<section id="login">
<h2>Admin Login</h2>
<input id="username" placeholder="Username">
<input id="password" type="password" placeholder="Password">
<button onclick="login()">Login</button>
</section>
<section id="editor" hidden>
<table id="products">
<thead>
<tr>
{{range .Columns}}<th>{{.}}</th>{{end}}
<th>Start Time</th>
<th>End Time</th>
<th>Allow Negative</th>
</tr>
</thead>
<tbody></tbody>
</table>
<button onclick="save()">Save Changes</button>
<button onclick="logout()">Logout</button>
</section>
<script>
let token = null;
async function login() {
  const res = await fetch('/api/login', {
    method: 'POST',
    body: JSON.stringify({
      username: document.getElementById('username').value,
      password: document.getElementById('password').value,
    }),
  });
  if (!res.ok) { alert('Invalid username or password.'); return; }
  token = (await res.json()).token;
  document.getElementById('login').hidden = true;
  document.getElementById('editor').hidden = false;
  refresh();
}
async function refresh() {
  const res = await fetch('/api/products', {headers: {Authorization: 'Bearer ' + token}});
  if (res.status === 401) { return relogin(); }
  render(await res.json());
}
function render(products) {
  const body = document.querySelector('#products tbody');
  body.innerHTML = '';
  for (const p of products) {
    const row = body.insertRow();
    row.dataset.code = p.code;
    for (const col of columns) { row.insertCell().textContent = p[col] ?? ''; }
    row.insertCell().innerHTML = timeInput(p.available_from);
    row.insertCell().innerHTML = timeInput(p.available_to);
    row.insertCell().innerHTML = '<input type="checkbox"' + (p.allow_negative ? ' checked' : '') + '>';
  }
}
function timeInput(value) {
  return '<input type="time" step="1" value="' + (value ?? '') + '">';
}
async function save() {
  const edits = [];
  for (const row of document.querySelectorAll('#products tbody tr')) {
    const inputs = row.querySelectorAll('input');
    edits.push({
      code: row.dataset.code,
      available_from: inputs[0].value || null,
      available_to: inputs[1].value || null,
      allow_negative: inputs[2].checked,
    });
  }
  const res = await fetch('/api/products/availability', {
    method: 'POST',
    headers: {Authorization: 'Bearer ' + token},
    body: JSON.stringify(edits),
  });
  if (res.status === 401) { return relogin(); }
  refresh();
}
async function logout() {
  await fetch('/api/logout', {method: 'POST', headers: {Authorization: 'Bearer ' + token}});
  relogin();
}
function relogin() {
  token = null;
  document.getElementById('editor').hidden = true;
  document.getElementById('login').hidden = false;
}
const columns = {{.Columns}};
</script>
</body>
</html>
`

var dashboardTemplate = template.Must(template.New("dashboard").Parse(dashboardHTML))

type pageData struct {
	Title   string
	Columns []string
}

// handlePage renders the dashboard shell. The product columns shown follow the
// persisted display settings.
func (srv *Server) handlePage(w http.ResponseWriter, req *http.Request) {
	columns, err := srv.editor.Repo.GetDisplayColumns()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "loading display settings failed")
		return
	}

	var buf bytes.Buffer
	err = dashboardTemplate.Execute(&buf, pageData{
		Title:   "Product Availability Editor",
		Columns: columns,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "rendering dashboard failed")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(gohtml.FormatBytes(buf.Bytes()))
}
