package handlers

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi"

	"techfix-hub/internal/model"
)

// Квитанция для печати после одобрения заявки на пополнение. Чисто
// презентационный экспорт, нигде не сохраняется.
var receiptTmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Top-Up Receipt {{.Request.ID}}</title>
<style>
body { font-family: monospace; margin: 2em; }
table { border-collapse: collapse; }
td { padding: 4px 12px; border: 1px solid #000; }
</style>
</head>
<body onload="window.print()">
<h2>{{.Organization}}</h2>
<h3>Top-Up Receipt</h3>
<table>
<tr><td>Receipt ID</td><td>{{.Request.ID}}</td></tr>
<tr><td>Date</td><td>{{.Request.ProcessedDate.Format "02 Jan 2006 15:04"}}</td></tr>
<tr><td>Customer</td><td>{{.Request.UserName}}</td></tr>
<tr><td>Amount</td><td>{{.Request.Amount}} credits</td></tr>
</table>
</body>
</html>
`))

type receiptData struct {
	Organization string
	Request      *model.TopUpRequest
}

func (s *Server) TopUpReceipt(w http.ResponseWriter, r *http.Request) {
	request, err := s.Data.TopUpRequest(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "The request does not exist", http.StatusNotFound)
		return
	}
	if request.Status != model.TopUpApproved || request.ProcessedDate == nil {
		http.Error(w, "Receipt is available for approved requests only", http.StatusConflict)
		return
	}

	details, err := s.Data.BankDetails()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	receiptTmpl.Execute(w, receiptData{
		Organization: details.Name,
		Request:      request,
	})
}
