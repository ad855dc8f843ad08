package qa

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
)

const pageTitle = "Question & Answer with Ollama"

type pageData struct {
	Title    string
	Question string
	Answer   string
	Answered bool
	Warning  string
	Error    string
}

var pageTemplate = template.Must(template.New("qa").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<form method="post" action="/">
<label for="question">Ask a question:</label>
<input type="text" id="question" name="question" value="{{.Question}}">
<button type="submit">Submit</button>
</form>
{{- if .Warning}}
<p class="warning" role="alert">{{.Warning}}</p>
{{- end}}
{{- if .Error}}
<p class="error" role="alert">{{.Error}}</p>
{{- end}}
{{- if .Answered}}
<h3>Answer:</h3>
<p class="answer" style="white-space: pre-wrap">{{.Answer}}</p>
{{- end}}
</body>
</html>
`))

// renderPage 渲染到缓冲区再写出，模板出错时不会留下半截页面
func renderPage(w http.ResponseWriter, status int, data pageData) {
	data.Title = pageTitle

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		log.Printf("[qa] render page: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[qa] write page: %v", err)
	}
}
