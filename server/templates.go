package server

import "html/template"

// templates.go — embedded pages so the binary is self-contained.

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Survey Agent</title>
<style>
body { font-family: sans-serif; max-width: 860px; margin: 2em auto; padding: 0 1em; }
form { margin: 1.5em 0; }
.hint { color: #666; font-size: 0.9em; }
</style>
</head>
<body>
<h1>Survey Agent</h1>
<p>Upload a CSV or XLSX file to profile it and filter it with plain-language requests.</p>
<form action="/upload" method="post" enctype="multipart/form-data">
  <input type="file" name="file" accept=".csv,.xlsx" required>
  <button type="submit">Upload</button>
</form>
<p class="hint">Files up to {{.MaxUploadMB}} MB. Data stays in memory on this server.</p>
</body>
</html>`))

var sessionTemplate = template.Must(template.New("session").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Session.FileName}} — Survey Agent</title>
<style>
body { font-family: sans-serif; max-width: 860px; margin: 2em auto; padding: 0 1em; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #ccc; padding: 4px 10px; text-align: left; font-size: 0.9em; }
textarea { width: 100%; height: 5em; }
.summary { background: #f6f6f6; padding: 1em; white-space: pre-wrap; }
.error { color: #b00; }
</style>
</head>
<body>
<h1>{{.Session.FileName}}</h1>
<p>{{.Profile.RowCount}} rows, {{.Profile.ColumnCount}} columns</p>

{{if .Session.Summary}}<div class="summary">{{.Session.Summary}}</div>{{end}}

<table>
<tr><th>Column</th><th>Type</th><th>Nulls</th><th>Distinct</th><th>Samples</th></tr>
{{range .Profile.Columns}}
<tr><td>{{.Name}}</td><td>{{.Type}}</td><td>{{.NullCount}}</td><td>{{.DistinctCount}}</td><td>{{range $i, $s := .Samples}}{{if $i}}, {{end}}{{$s}}{{end}}</td></tr>
{{end}}
</table>

{{if .Error}}<p class="error">{{.Error}}</p>{{end}}

<form action="/analyze" method="post">
  <input type="hidden" name="session" value="{{.Session.ID}}">
  <p>Describe what you want, e.g. <em>"SDVOSB solicitations posted in February 2024, grouped by NAICS"</em>:</p>
  <textarea name="request" required>{{.Request}}</textarea>
  <button type="submit">Analyze</button>
</form>
<p><a href="/">Upload a different file</a></p>
</body>
</html>`))

var resultTemplate = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Results — Survey Agent</title>
<style>
body { font-family: sans-serif; max-width: 860px; margin: 2em auto; padding: 0 1em; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #ccc; padding: 4px 10px; text-align: left; font-size: 0.9em; }
.warning { color: #a60; }
.explanation { background: #f6f6f6; padding: 1em; }
</style>
</head>
<body>
<h1>Results for {{.Session.FileName}}</h1>

{{if .Explanation}}<div class="explanation">{{.Explanation}}</div>{{end}}

{{range .Warnings}}<p class="warning">⚠️ {{.Sheet}}: {{.Message}}</p>{{end}}

<table>
<tr><th>Sheet</th><th>Rows</th><th></th></tr>
{{range .Sheets}}
<tr>
  <td>{{.Name}}</td>
  <td>{{.Rows}}</td>
  <td><a href="/download?session={{$.Session.ID}}&format=csv&sheet={{.Name}}">csv</a></td>
</tr>
{{end}}
</table>

<p><a href="/download?session={{.Session.ID}}&format=xlsx">Download workbook (.xlsx)</a></p>
<p><a href="/session?id={{.Session.ID}}">Back to dataset</a> · <a href="/">Upload a different file</a></p>
</body>
</html>`))
