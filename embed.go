package folio

import "embed"

// staticAssets holds the files served under /public/ by folio itself:
// admin.js (dashboard forms over the JSON API) and site.css.
//
//go:embed static/*
var staticAssets embed.FS
