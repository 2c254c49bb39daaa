package handler

import "net/http"

const welcomePage = `<!DOCTYPE html>
<html>
<head><title>Cyber Kittens</title></head>
<body>
  <h1>Welcome to Cyber Kittens!</h1>
  <p>Cats are available at <a href="/kittens/1">/kittens/:id</a></p>
  <p>Create a new cat at <b><code>POST /kittens</code></b> and delete one at <b><code>DELETE /kittens/:id</code></b></p>
  <p>Log in via POST /login or register via POST /register</p>
</body>
</html>
`

// HandleHome serves the welcome page on GET /.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(welcomePage))
}

// HandleHealth handles GET /health.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
