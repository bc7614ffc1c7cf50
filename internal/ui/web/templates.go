package web

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; margin: 24px; color: #212529; }
h1 { margin-bottom: 8px; }
.hint { font-style: italic; margin-bottom: 16px; }
.controls { display: flex; flex-wrap: wrap; gap: 16px; margin-bottom: 24px; }
.control p { font-weight: bold; margin: 0 0 4px 0; }
.control select, .control input { height: 34px; width: 200px; box-sizing: border-box; }
.row { display: flex; flex-wrap: wrap; gap: 24px; }
.panel { flex: 1 1 45%; min-width: 360px; overflow-x: auto; }
.caption { margin: 12px 0 4px 0; }
.axes { font-size: 12px; color: #6c757d; }
.legend { font-size: 12px; margin-top: 4px; }
.swatch { display: inline-block; width: 10px; height: 10px; margin: 0 4px 0 10px; }
.error { color: #b02a37; }
</style>
</head>
<body>
<h1>{{.Heading}}</h1>
<div class="hint">Select the tracking-id (person name), the prediction level (top-1 &amp; top-2) and the desired time period to filter data.</div>
<form method="get" action="/" class="controls" onchange="this.submit()">
  <div class="control">
    <p>Track id</p>
    <select name="track_id">
      {{range .Tracks}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>{{end}}
    </select>
  </div>
  <div class="control">
    <p>Predictions</p>
    <select name="category">
      {{range .Categories}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>{{end}}
    </select>
  </div>
  <div class="control"><p>Date from</p><input type="text" name="date_from" value="{{.DateFrom}}" placeholder="Example: 2020-12-1"></div>
  <div class="control"><p>Date to</p><input type="text" name="date_to" value="{{.DateTo}}" placeholder="Example: 2020-12-12"></div>
  <div class="control"><p>Time from</p><input type="text" name="time_from" value="{{.TimeFrom}}" placeholder="Example: 17:00:00"></div>
  <div class="control"><p>Time to</p><input type="text" name="time_to" value="{{.TimeTo}}" placeholder="Example: 18:00:00"></div>
  <noscript><button type="submit">Apply</button></noscript>
</form>
<div class="row">
{{range .Panels}}
  <div class="panel" id="{{.ID}}">
    <div class="caption">{{.Caption}}</div>
    {{if .Err}}<div class="error">{{.Err}}</div>{{else}}{{.SVG}}
    <div class="axes">x: {{.XLabel}}, y: {{.YLabel}}</div>
    {{if .Entries}}<div class="legend">{{.Legend}}:{{range .Entries}}<span class="swatch" style="background: {{.Color | css}}"></span>{{.Series}}{{end}}</div>{{end}}{{end}}
  </div>
{{end}}
</div>
</body>
</html>
`
