package render

// pagesTemplate holds the grid, profile, and not-found page templates. The
// surrounding shell (CSS, masthead assets) is owned by the deployment, so
// the markup here stays structural.
const pagesTemplate = `{{define "grid"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="/static/directory.css">
</head>
<body>
<header class="masthead">
<h1>{{.Title}}</h1>
{{if .Weather}}<span class="weather">{{.Weather}}</span>
{{end}}</header>
<form id="filters" method="get" action="/">
<select name="town">
<option value="All">All Towns</option>
{{range .Towns}}<option value="{{.Value}}"{{if eq .Value $.Selected.Town}} selected{{end}}>{{.Label}}</option>
{{end}}</select>
<select name="cat">
<option value="All">All Industries</option>
{{range .Categories}}<option value="{{.Value}}"{{if eq .Value $.Selected.Category}} selected{{end}}>{{.Label}}</option>
{{end}}</select>
<button type="submit">Apply</button>
</form>
<main id="directory-grid">
{{if .Message}}<p class="status-msg">{{.Message}}</p>
{{else}}{{range .Cards}}<div class="card {{.Tier}}">
<div class="logo-box"><img src="{{.ImageURL}}" alt="{{.Name}} logo" loading="lazy" data-fallback="{{.ImageFallback}}" onerror="this.onerror=null;this.src=this.dataset.fallback"></div>
<h3>{{.Name}}</h3>
<div class="town-bar">{{.Town}}</div>
<span class="category-tag">{{.CategoryGlyph}} {{.Category}}</span>
{{if .ShowPhone}}<p class="phone">{{.Phone}}</p>
{{end}}{{if .ShowReadMore}}<a class="read-more" href="{{profileHref .Slug $.Query}}">Read more</a>
{{end}}</div>
{{end}}{{end}}</main>
</body>
</html>
{{end}}{{define "profile"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Detail.Name}} | {{.Title}}</title>
<link rel="stylesheet" href="/static/directory.css">
</head>
<body>
<div class="profile-container">
<div class="tier-indicator">{{.Detail.TierLabel}}</div>
<a class="back-link" href="{{.BackURL}}">Return to Directory</a>
<div class="profile-header">
<div class="profile-logo-box"><img src="{{.Detail.ImageURL}}" alt="{{.Detail.Name}} logo" data-fallback="{{.Detail.ImageFallback}}" onerror="this.onerror=null;this.src=this.dataset.fallback"></div>
<div>
<h1 class="biz-title">{{.Detail.Name}}</h1>
<p class="biz-meta">{{.Detail.CategoryGlyph}} {{.Detail.Category}} | {{.Detail.Town}}</p>
</div>
</div>
<div class="details-grid">
<div class="info-section">
<h3>Contact &amp; Location</h3>
<div class="info-item"><strong>Phone:</strong> {{.Detail.Phone}}</div>
<div class="info-item"><strong>Address:</strong> {{.Detail.Address}}</div>
<div class="info-item"><strong>Hours:</strong> {{.Detail.Hours}}</div>
{{if .Detail.Website}}<a class="action-btn" href="{{.Detail.Website}}">Visit Website</a>
{{end}}{{if .Detail.Facebook}}<a class="action-btn facebook" href="{{.Detail.Facebook}}">Facebook</a>
{{end}}</div>
<div class="info-section">
<h3>Our Story</h3>
<div class="bio-box">{{.Detail.Bio}}</div>
</div>
</div>
{{if .Detail.MapURL}}<div class="map-box"><iframe width="100%" height="300" src="{{.Detail.MapURL}}" style="border:0" allowfullscreen></iframe></div>
{{end}}</div>
</body>
</html>
{{end}}{{define "notfound"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Not Found | {{.Title}}</title>
<link rel="stylesheet" href="/static/directory.css">
</head>
<body>
<div class="not-found">
<h2>Business Profile Not Found</h2>
<p>No listing matches &quot;{{.Name}}&quot;.</p>
<a class="back-link" href="{{.BackURL}}">Return to Directory</a>
</div>
</body>
</html>
{{end}}`
