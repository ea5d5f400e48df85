package api

import (
	"bytes"
	"html/template"
	"net/http"

	"mayagen-web/internal/model"
	"mayagen-web/internal/notify"

	"github.com/gin-gonic/gin"
)

// Shared shell for every page: dark studio theme, top nav, notice stack.
const pageHead = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>MayaGen</title>
<style>
  :root {
    --bg: #0a0a0a;
    --panel: #171717;
    --border: #262626;
    --text: #f5f5f5;
    --muted: #a3a3a3;
    --accent: #6366f1;
    --good: #4ade80;
    --warn: #fbbf24;
    --bad: #f87171;
  }
  * { box-sizing: border-box; }
  body { margin: 0; background: var(--bg); color: var(--text); font-family: ui-sans-serif, system-ui, -apple-system, sans-serif; }
  a { color: inherit; text-decoration: none; }
  nav { display: flex; gap: 16px; align-items: center; padding: 14px 24px; border-bottom: 1px solid var(--border); background: rgba(0,0,0,0.6); position: sticky; top: 0; }
  nav .brand { font-weight: 700; color: var(--accent); margin-right: 12px; }
  nav a:hover { color: var(--accent); }
  nav .right { margin-left: auto; color: var(--muted); display: flex; gap: 12px; align-items: center; }
  main { max-width: 1100px; margin: 0 auto; padding: 28px 24px 80px; }
  .notice { padding: 10px 14px; border-radius: 10px; border: 1px solid var(--border); margin-bottom: 10px; background: var(--panel); }
  .notice.error { border-color: rgba(248,113,113,0.5); color: var(--bad); }
  .notice.success { border-color: rgba(74,222,128,0.5); color: var(--good); }
  .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 16px; }
  .card { background: var(--panel); border: 1px solid var(--border); border-radius: 14px; overflow: hidden; display: block; }
  .card:hover { border-color: var(--accent); }
  .card img { width: 100%; aspect-ratio: 1; object-fit: cover; display: block; }
  .card .ph { width: 100%; aspect-ratio: 1; display: flex; align-items: center; justify-content: center; color: var(--muted); }
  .card .meta { padding: 10px 12px; font-size: 13px; color: var(--muted); }
  .badge { display: inline-block; padding: 3px 10px; border-radius: 999px; font-size: 12px; border: 1px solid var(--border); text-transform: capitalize; }
  .badge.green { color: var(--good); border-color: rgba(74,222,128,0.4); }
  .badge.indigo { color: var(--accent); border-color: rgba(99,102,241,0.4); }
  .badge.amber { color: var(--warn); border-color: rgba(251,191,36,0.4); }
  .badge.red { color: var(--bad); border-color: rgba(248,113,113,0.4); }
  .badge.neutral { color: var(--muted); }
  .bar { display: flex; flex-wrap: wrap; gap: 10px; margin: 18px 0; align-items: center; }
  input, select { background: var(--panel); color: var(--text); border: 1px solid var(--border); border-radius: 10px; padding: 9px 12px; font-size: 14px; }
  button, .btn { background: var(--accent); color: white; border: 0; border-radius: 10px; padding: 9px 16px; font-size: 14px; cursor: pointer; display: inline-block; }
  button.secondary, .btn.secondary { background: var(--panel); border: 1px solid var(--border); color: var(--muted); }
  button.danger, .btn.danger { background: #dc2626; }
  .empty { text-align: center; color: var(--muted); padding: 80px 0; }
  .panel { background: var(--panel); border: 1px solid var(--border); border-radius: 14px; padding: 18px; margin-bottom: 18px; }
  .chips { display: flex; flex-wrap: wrap; gap: 8px; }
  .chips label { border: 1px solid var(--border); border-radius: 8px; padding: 5px 10px; font-size: 13px; color: var(--muted); cursor: pointer; }
  .chips input { display: none; }
  .chips input:checked + span { color: var(--accent); }
  .progress { height: 8px; background: var(--border); border-radius: 999px; overflow: hidden; }
  .progress div { height: 100%; background: var(--accent); }
  .pager { display: flex; gap: 10px; justify-content: center; margin-top: 26px; color: var(--muted); align-items: center; }
  h1 { font-size: 22px; }
  .kv { display: flex; justify-content: space-between; padding: 7px 0; border-bottom: 1px solid var(--border); font-size: 14px; }
  .kv span:first-child { color: var(--muted); }
</style>
</head>
<body>
<nav>
  <a class="brand" href="/">MayaGen</a>
  <a href="/gallery">Gallery</a>
  <a href="/collections">Collections</a>
  <a href="/bulk">Bulk</a>
  <a href="/bulk/history">Batches</a>
  <div class="right">
    {{if .User}}
      <span>{{.User.Username}}</span>
      <form method="post" action="/logout"><button class="secondary" type="submit">Logout</button></form>
    {{else}}
      <a href="/login">Sign In</a>
    {{end}}
  </div>
</nav>
<main>
{{range .Notices}}<div class="notice {{.Level}}">{{.Message}}</div>{{end}}
`

const pageFoot = `
</main>
</body>
</html>`

func pageTmpl(name, body string) *template.Template {
	return template.Must(template.New(name).Parse(pageHead + body + pageFoot))
}

// imageCardTmpl is shared by the gallery and collections grids
const imageCardTmpl = `
<div class="grid">
{{range .Images}}
  <a class="card" href="/image/{{.ID}}">
    {{if and (eq .Bucket.String "completed") .URL}}
      <img src="{{.URL}}" alt="{{.Filename}}" loading="lazy" />
    {{else if or (eq .Bucket.String "queued") (eq .Bucket.String "processing")}}
      <div class="ph">Generating…</div>
    {{else if eq .Bucket.String "failed"}}
      <div class="ph">Generation Failed</div>
    {{else}}
      <div class="ph">Loading…</div>
    {{end}}
    <div class="meta">
      {{.Prompt}}<br/>
      <span class="badge {{.Badge.Color}}">{{.Badge.Label}}</span>
    </div>
  </a>
{{end}}
</div>
{{if not .Images}}<div class="empty">No images found</div>{{end}}`

const filterBarTmpl = `
<form class="bar" method="get">
  <input name="search" placeholder="Search prompts..." value="{{.Filter.Search}}" />
  <select name="category">
    <option value="all">All Categories</option>
    {{range .Categories}}<option value="{{.}}" {{if eq . $.Filter.Category}}selected{{end}}>{{.}}</option>{{end}}
  </select>
  <select name="model">
    <option value="all">All Models</option>
    {{range $id, $name := .Models}}<option value="{{$id}}" {{if eq $id $.Filter.Model}}selected{{end}}>{{$name}}</option>{{end}}
  </select>
  <button type="submit" class="secondary">Filter</button>
</form>`

var indexPageTmpl = pageTmpl("index", `
<h1>Generate</h1>
<div class="panel">
  <form method="post" action="/generate" class="bar">
    <input name="prompt" placeholder="Describe your imagination..." style="flex:1;min-width:260px" required />
    <input name="category" placeholder="e.g. portraits" required />
    <input name="width" type="number" value="512" style="width:90px" />
    <input name="height" type="number" value="768" style="width:90px" />
    <select name="model">
      {{range $id, $name := .Models}}<option value="{{$id}}">{{$name}}</option>{{end}}
    </select>
    <button type="submit">Generate</button>
  </form>
</div>
<h1>Recent</h1>
<div class="grid">
{{range .Recent}}
  <a class="card" href="/image/{{.ID}}">
    {{if .URL}}<img src="{{.URL}}" alt="{{.Filename}}" loading="lazy" />{{else}}<div class="ph">Loading…</div>{{end}}
    <div class="meta">{{.Prompt}}</div>
  </a>
{{end}}
</div>
{{if not .Recent}}<div class="empty">Start generating to see your creations here</div>{{end}}`)

var galleryPageTmpl = pageTmpl("gallery", `
<h1>Gallery <span class="badge neutral">{{.Total}} images</span></h1>`+
	filterBarTmpl+imageCardTmpl+`
<div class="pager">
  {{if gt .Page 1}}<a class="btn secondary" href="/gallery?page={{.PrevPage}}">Prev</a>{{end}}
  <span>Page {{.Page}} of {{.TotalPages}}</span>
  {{if lt .Page .TotalPages}}<a class="btn secondary" href="/gallery?page={{.NextPage}}">Next</a>{{end}}
</div>`)

var collectionsPageTmpl = pageTmpl("collections", `
<h1>My Collections <span class="badge neutral">{{.Total}} items</span></h1>`+
	filterBarTmpl+imageCardTmpl)

var imagePageTmpl = pageTmpl("image", `
<a href="/gallery">&larr; Gallery</a>
<h1>Image #{{.Image.ID}} <span class="badge {{.Badge.Color}}">{{.Badge.Label}}</span></h1>
{{if eq .Bucket.String "queued"}}
  <div class="panel empty">Generating Masterpiece…<br/><small>This typically takes 10-30 seconds.</small></div>
{{else if eq .Bucket.String "processing"}}
  <div class="panel empty">Generating Masterpiece…<br/><small>This typically takes 10-30 seconds.</small></div>
{{else if .ImageURL}}
  <div class="panel" style="text-align:center"><img src="{{.ImageURL}}" alt="{{.Image.Prompt}}" style="max-width:100%;border-radius:10px" /></div>
{{else}}
  <div class="panel empty">Image not available</div>
{{end}}
<div class="panel">
  <div class="kv"><span>Prompt</span><span>{{.Image.Prompt}}</span></div>
  <div class="kv"><span>Model</span><span>{{.Model}}</span></div>
  <div class="kv"><span>Provider</span><span>{{.Image.Provider}}</span></div>
  <div class="kv"><span>Resolution</span><span>{{.Image.Width}} x {{.Image.Height}}</span></div>
  <div class="kv"><span>Category</span><span>{{.Image.Category}}</span></div>
  <div class="kv"><span>Filename</span><span>{{.Image.Filename}}</span></div>
  <div class="kv"><span>Created By</span><span>{{.Image.CreatedBy}}</span></div>
  <div class="kv"><span>Created</span><span>{{.Image.CreatedAt}}</span></div>
  <div class="kv"><span>Visibility</span><span>{{if .Image.IsPublic}}Public{{else}}Private{{end}}</span></div>
</div>
{{if .IsOwner}}
<form method="post" action="/image/{{.Image.ID}}/visibility">
  {{if .Image.IsPublic}}
    <input type="hidden" name="public" value="false" />
    <button class="secondary" type="submit">Public Image (Visible to everyone)</button>
  {{else}}
    <input type="hidden" name="public" value="true" />
    <button class="secondary" type="submit">Private Image (Only you can see this)</button>
  {{end}}
</form>
{{end}}`)

var bulkPageTmpl = pageTmpl("bulk", `
<h1>Bulk Generate</h1>
<form method="post" action="/batch">
  <div class="panel bar">
    <input name="name" placeholder="Batch Name (e.g. Summer Collection)" />
    <input name="category" placeholder="Category*" required />
    <input name="target_subject" placeholder="Subject Prompt* (e.g. A cute scottish fold cat)" style="flex:1;min-width:260px" required />
    <input name="total_images" type="number" value="100" min="1" max="10000" style="width:110px" />
    <select name="model">
      {{range $id, $name := .Models}}<option value="{{$id}}">{{$name}}</option>{{end}}
    </select>
  </div>
  <div class="panel"><strong>Colors</strong>
    <div class="chips">{{range .Presets.Colors}}<label><input type="checkbox" name="colors" value="{{.}}" /><span>{{.}}</span></label>{{end}}</div>
  </div>
  <div class="panel"><strong>Environments</strong>
    <div class="chips">{{range .Presets.Environments}}<label><input type="checkbox" name="environments" value="{{.}}" /><span>{{.}}</span></label>{{end}}</div>
  </div>
  <div class="panel"><strong>Actions</strong>
    <div class="chips">{{range .Presets.Actions}}<label><input type="checkbox" name="actions" value="{{.}}" /><span>{{.}}</span></label>{{end}}</div>
  </div>
  <div class="panel"><strong>Styles</strong>
    <div class="chips">{{range .Presets.Styles}}<label><input type="checkbox" name="styles" value="{{.}}" /><span>{{.}}</span></label>{{end}}</div>
  </div>
  <div class="panel"><strong>Lighting</strong>
    <div class="chips">{{range .Presets.Lighting}}<label><input type="checkbox" name="lighting" value="{{.}}" /><span>{{.}}</span></label>{{end}}</div>
  </div>
  <div class="panel"><strong>Camera</strong>
    <div class="chips">{{range .Presets.Camera}}<label><input type="checkbox" name="camera" value="{{.}}" /><span>{{.}}</span></label>{{end}}</div>
  </div>
  <div class="bar">
    <button type="button" class="secondary" id="preview-btn">Preview</button>
    <button type="submit">Create Batch</button>
  </div>
</form>
<div id="preview" class="panel" style="display:none"></div>
<script>
document.getElementById('preview-btn').addEventListener('click', async () => {
  const form = document.querySelector('form');
  const data = new FormData(form);
  const axes = ['colors','environments','actions','styles','lighting','camera'];
  const variations = {};
  axes.forEach(a => variations[a] = data.getAll(a));
  const res = await fetch('/batch/preview', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({target_subject: data.get('target_subject'), variations: variations, count: 3})
  });
  const body = await res.json();
  const box = document.getElementById('preview');
  box.style.display = 'block';
  if (!body.success) { box.textContent = body.message; return; }
  box.innerHTML = '<strong>' + body.max_unique_combinations + ' unique combinations possible</strong><br/>' +
    body.prompts.map(p => '<div class="notice">' + p + '</div>').join('');
});
</script>`)

var historyPageTmpl = pageTmpl("history", `
<h1>Batch History <span class="badge neutral">{{.Total}} batches</span></h1>
<div class="grid">
{{range .Batches}}
  <a class="card" href="/bulk/view/{{.ID}}">
    <div class="meta">
      <strong>{{.Name}}</strong>
      <span class="badge {{.Badge.Color}}">{{.Badge.Label}}</span><br/><br/>
      Progress: {{.GeneratedCount}} / {{.TotalImages}}
      <div class="progress"><div style="width:{{.Progress}}%"></div></div><br/>
      {{.Category}} &middot; {{.CreatedAt}}
      {{if gt .FailedCount 0}}<br/><span class="badge red">{{.FailedCount}} generations failed</span>{{end}}
      {{if .CanCancel}}<br/><br/><a class="btn danger" href="/bulk/view/{{.ID}}/cancel">Cancel</a>{{end}}
    </div>
  </a>
{{end}}
</div>
{{if not .Batches}}
<div class="empty">No batch jobs yet<br/><br/><a class="btn" href="/bulk">Create First Batch</a></div>
{{end}}`)

var batchViewPageTmpl = pageTmpl("batchview", `
<a href="/bulk/history">&larr; Back to History</a>
<h1>{{.Batch.Name}} <span class="badge {{.Badge.Color}}">{{.Badge.Label}}</span></h1>
<div class="panel">
  <div class="kv"><span>Subject</span><span>{{.Batch.TargetSubject}}</span></div>
  <div class="kv"><span>Category</span><span>{{.Batch.Category}}</span></div>
  <div class="kv"><span>Model</span><span>{{.Model}}</span></div>
  <div class="kv"><span>Size</span><span>{{.Batch.Width}}x{{.Batch.Height}}</span></div>
  <div class="kv"><span>Created</span><span>{{.Batch.CreatedAt}}</span></div>
  <div class="kv"><span>Progress</span><span>{{.Batch.GeneratedCount}}/{{.Batch.TotalImages}} ({{.Batch.Progress}}%)</span></div>
  <br/>
  <div class="progress"><div style="width:{{.Batch.Progress}}%"></div></div>
  <br/>
  <span class="badge green">{{.Completed}} completed</span>
  {{if gt .Processing 0}}<span class="badge indigo">{{.Processing}} processing</span>{{end}}
  {{if gt .Failed 0}}<span class="badge red">{{.Failed}} failed</span>{{end}}
  <a class="btn secondary" style="float:right" href="/bulk/view/{{.Batch.ID}}">Refresh</a>
</div>
<div class="grid">
{{range .Images}}
  <a class="card" href="/image/{{.ID}}">
    {{if and (eq .Bucket.String "completed") .ImageURL}}
      <img src="{{.ImageURL}}" alt="{{.Filename}}" loading="lazy" />
    {{else if eq .Bucket.String "cancelled"}}
      <div class="ph">Cancelled</div>
    {{else if eq .Bucket.String "failed"}}
      <div class="ph">Generation Failed</div>
    {{else}}
      <div class="ph">Generating…</div>
    {{end}}
    <div class="meta">{{.Prompt}}<br/><span class="badge {{.Badge.Color}}">{{.Badge.Label}}</span></div>
  </a>
{{end}}
</div>
{{if not .Images}}<div class="empty">No images yet<br/>Images will appear here as they are generated</div>{{end}}`)

var confirmCancelTmpl = pageTmpl("confirmcancel", `
<h1>Cancel Batch?</h1>
<div class="panel">
  <p>Are you sure you want to cancel this batch? This will stop all pending generations. This action cannot be undone.</p>
  <div class="bar">
    <a class="btn secondary" href="/bulk/history">Keep Processing</a>
    <form method="post" action="/bulk/view/{{.ID}}/cancel">
      <button class="danger" type="submit">Yes, Cancel Batch</button>
    </form>
  </div>
</div>`)

var loginPageTmpl = pageTmpl("login", `
<h1>Sign In</h1>
<div class="panel" style="max-width:380px">
  <form method="post" action="/login">
    <p><input name="username" placeholder="Username" style="width:100%" required /></p>
    <p><input name="password" type="password" placeholder="Password" style="width:100%" required /></p>
    <button type="submit" style="width:100%">Sign In</button>
  </form>
  <p style="color:var(--muted)">Don't have an account? <a href="/register" style="color:var(--accent)">Register</a></p>
</div>`)

var registerPageTmpl = pageTmpl("register", `
<h1>Create Account</h1>
<div class="panel" style="max-width:380px">
  <form method="post" action="/register">
    <p><input name="username" placeholder="Username" style="width:100%" required /></p>
    <p><input name="email" type="email" placeholder="Email" style="width:100%" required /></p>
    <p><input name="password" type="password" placeholder="Password" style="width:100%" required /></p>
    <button type="submit" style="width:100%">Register</button>
  </form>
  <p style="color:var(--muted)">Already registered? <a href="/login" style="color:var(--accent)">Sign In</a></p>
</div>`)

// messagePageTmpl covers the dedicated empty/denied states: not-found,
// access-denied and login-required each get their own title and hint
var messagePageTmpl = pageTmpl("message", `
<div class="empty">
  <h1>{{.Title}}</h1>
  <p>{{.Detail}}</p>
  <a class="btn" href="{{.LinkHref}}">{{.LinkText}}</a>
</div>`)

func renderPage(c *gin.Context, tmpl *template.Template, data gin.H) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		c.String(http.StatusInternalServerError, "render error: %v", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func renderMessage(c *gin.Context, code int, user *model.User, title, detail, linkHref, linkText string) {
	var buf bytes.Buffer
	err := messagePageTmpl.Execute(&buf, gin.H{
		"User":     user,
		"Notices":  []notify.Notice{},
		"Title":    title,
		"Detail":   detail,
		"LinkHref": linkHref,
		"LinkText": linkText,
	})
	if err != nil {
		c.String(http.StatusInternalServerError, "render error: %v", err)
		return
	}
	c.Data(code, "text/html; charset=utf-8", buf.Bytes())
}

func renderNotFound(c *gin.Context, user *model.User, title string) {
	renderMessage(c, http.StatusNotFound, user, title,
		"This item doesn't exist or has been removed.", "/gallery", "Back to Gallery")
}

func renderAccessDenied(c *gin.Context, user *model.User) {
	renderMessage(c, http.StatusForbidden, user, "Access Denied",
		"This image is private. Only its owner can view it.", "/gallery", "Back to Gallery")
}

func renderLoginRequired(c *gin.Context, detail string) {
	renderMessage(c, http.StatusOK, nil, "Login Required", detail, "/login", "Sign In")
}
