// SPDX-License-Identifier: Apache-2.0

package web

import "html/template"

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Elector Name Duplicate Finder</title>
    <style>
        body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f5f6fa; color: #2d3436; }
        .container { max-width: 720px; margin: 48px auto; padding: 0 16px; }
        .card { background: #fff; border-radius: 8px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.08); }
        h1 { margin-top: 0; font-size: 1.6em; }
        .hint { color: #636e72; font-size: 0.9em; }
        label { display: block; margin: 16px 0 4px; font-weight: 600; }
        input[type=file], input[type=number] { width: 100%; padding: 8px; border: 1px solid #dfe6e9; border-radius: 4px; box-sizing: border-box; }
        button { margin-top: 24px; padding: 10px 24px; background: #0984e3; color: #fff; border: none; border-radius: 4px; font-size: 1em; cursor: pointer; }
        button:hover { background: #0767b1; }
    </style>
</head>
<body>
    <div class="container">
        <div class="card">
            <h1>Elector Name Duplicate Finder</h1>
            <p class="hint">Upload an Excel workbook with sheets <strong>{{.SourceSheet}}</strong> and
            <strong>{{.TargetSheet}}</strong>. Names are compared across English and vernacular
            spellings; pairs at or above the threshold are reported as likely duplicates.</p>
            <form action="/upload" method="post" enctype="multipart/form-data">
                <label for="file">Workbook (.xlsx, max 50MB)</label>
                <input type="file" id="file" name="file" accept=".xlsx,.xls" required>
                <label for="threshold">Similarity threshold (0-100)</label>
                <input type="number" id="threshold" name="threshold" min="0" max="100" value="{{.Threshold}}">
                <button type="submit">Find Duplicates</button>
            </form>
        </div>
    </div>
</body>
</html>`))

var resultsTemplate = template.Must(template.New("results").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Duplicate Results - {{.Filename}}</title>
    <style>
        body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f5f6fa; color: #2d3436; }
        .container { max-width: 1100px; margin: 32px auto; padding: 0 16px; }
        .card { background: #fff; border-radius: 8px; padding: 24px; margin-bottom: 24px; box-shadow: 0 2px 8px rgba(0,0,0,0.08); }
        h1 { margin-top: 0; font-size: 1.4em; }
        .stats { display: flex; flex-wrap: wrap; gap: 16px; }
        .stat { flex: 1; min-width: 140px; text-align: center; padding: 12px; border-radius: 6px; background: #f1f2f6; }
        .stat .value { font-size: 1.6em; font-weight: 700; }
        .stat.exact .value { color: #00b894; }
        .stat.fuzzy .value { color: #fdcb6e; }
        .stat.none .value { color: #d63031; }
        table { width: 100%; border-collapse: collapse; font-size: 0.9em; }
        th, td { padding: 8px 10px; border-bottom: 1px solid #dfe6e9; text-align: left; }
        th { background: #f1f2f6; }
        .score-exact { color: #00b894; font-weight: 700; }
        .score-fuzzy { color: #e17055; font-weight: 700; }
        a.button { display: inline-block; padding: 10px 24px; background: #0984e3; color: #fff; border-radius: 4px; text-decoration: none; }
        .hint { color: #636e72; font-size: 0.9em; }
    </style>
</head>
<body>
    <div class="container">
        <div class="card">
            <h1>Results for {{.Filename}}</h1>
            <div class="stats">
                <div class="stat"><div class="value">{{.Summary.TotalSources}}</div>Source records</div>
                <div class="stat"><div class="value">{{.Summary.TotalTargets}}</div>Target records</div>
                <div class="stat"><div class="value">{{.Summary.Duplicates}}</div>Duplicates</div>
                <div class="stat exact"><div class="value">{{.Summary.ExactMatches}}</div>Exact (100%)</div>
                <div class="stat fuzzy"><div class="value">{{.Summary.FuzzyMatches}}</div>Fuzzy (&ge;{{.Summary.Threshold}}%)</div>
                <div class="stat none"><div class="value">{{.Summary.NoMatches}}</div>No match</div>
            </div>
            <p><a class="button" href="/download/{{.Download}}">Download review workbook</a>
            <a class="button" style="background:#636e72" href="/">New comparison</a></p>
        </div>
        <div class="card">
            <h1>Duplicate pairs ({{.Shown}} of {{.Total}} shown)</h1>
            {{if .Duplicates}}
            <table>
                <tr><th>#</th><th>Score</th><th>Match type</th>
                    <th>Source (English)</th><th>Source (Vernacular)</th>
                    <th>Target (English)</th><th>Target (Vernacular)</th></tr>
                {{range .Duplicates}}
                <tr>
                    <td>{{.DuplicateID}}</td>
                    <td class="{{if .IsExactMatch}}score-exact{{else}}score-fuzzy{{end}}">{{.SimilarityScore}}%</td>
                    <td>{{.MatchType}}</td>
                    <td>{{.SourceEnglish}}</td><td>{{.SourceVernacular}}</td>
                    <td>{{.TargetEnglish}}</td><td>{{.TargetVernacular}}</td>
                </tr>
                {{end}}
            </table>
            {{if lt .Shown .Total}}<p class="hint">The downloadable workbook contains all {{.Total}} pairs.</p>{{end}}
            {{else}}
            <p>No duplicates found at the configured threshold.</p>
            {{end}}
        </div>
    </div>
</body>
</html>`))

var errorTemplate = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Error - Elector Name Duplicate Finder</title>
    <style>
        body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f5f6fa; color: #2d3436; }
        .container { max-width: 720px; margin: 48px auto; padding: 0 16px; }
        .card { background: #fff; border-radius: 8px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.08); border-left: 6px solid #d63031; }
        a.button { display: inline-block; margin-top: 16px; padding: 10px 24px; background: #0984e3; color: #fff; border-radius: 4px; text-decoration: none; }
    </style>
</head>
<body>
    <div class="container">
        <div class="card">
            <h1>Something went wrong</h1>
            <p>{{.Message}}</p>
            <a class="button" href="/">Back to upload</a>
        </div>
    </div>
</body>
</html>`))
