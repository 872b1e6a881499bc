package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"gorm.io/gorm"

	"github.com/diewo77/go-quotations/internal/models"
	"github.com/diewo77/go-quotations/internal/services"
)

// seedTenant creates an account row with one advisor, client, and product.
func seedTenant(t *testing.T, db *gorm.DB, username string) (account models.Account, advisor models.User, client models.Client, product models.Product) {
	t.Helper()
	account = models.Account{Username: username, Password: "x", Role: models.RoleUser}
	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}
	advisor = models.User{AccountID: account.ID, Email: username + "@example.com", Password: "x", IsActive: true}
	client = models.Client{AccountID: account.ID, Name: "ACME"}
	product = models.Product{AccountID: account.ID, Name: "Widget", Price: 10}
	for _, m := range []interface{}{&advisor, &client, &product} {
		if err := db.Create(m).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return account, advisor, client, product
}

func TestQuotationCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	h := NewQuotationHandler(db, services.NewQuotationService(db), t.TempDir())
	account, advisor, client, product := seedTenant(t, db, "alpha")

	body := `{"client_id":` + strconv.Itoa(int(client.ID)) +
		`,"user_id":` + strconv.Itoa(int(advisor.ID)) +
		`,"tax_percentage":16,"items":[{"product_id":` + strconv.Itoa(int(product.ID)) +
		`,"description":"Widget","unit_price":10,"quantity":3,"is_taxable":true}]}`
	w := httptest.NewRecorder()
	h.Create(w, jsonRequest(http.MethodPost, "/quotations/", body, &account))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.Quotation
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.QuotationNumber != "1" {
		t.Fatalf("expected number 1, got %q", created.QuotationNumber)
	}
	if math.Abs(created.Subtotal-30) > 1e-9 ||
		math.Abs(created.TotalTax-4.8) > 1e-9 ||
		math.Abs(created.Total-34.8) > 1e-9 {
		t.Fatalf("got subtotal=%v tax=%v total=%v", created.Subtotal, created.TotalTax, created.Total)
	}

	req := jsonRequest(http.MethodGet, "/quotations/1", "", &account)
	req.SetPathValue("id", strconv.Itoa(int(created.ID)))
	w = httptest.NewRecorder()
	h.Get(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var fetched models.Quotation
	if err := json.Unmarshal(w.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(fetched.Items) != 1 || fetched.Client == nil || fetched.User == nil {
		t.Fatalf("expected full aggregate in response: %s", w.Body.String())
	}
}

func TestQuotationCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	h := NewQuotationHandler(db, services.NewQuotationService(db), t.TempDir())
	account, _, _, _ := seedTenant(t, db, "alpha")

	cases := []string{
		`{"user_id":1,"items":[]}`,                                            // missing client
		`{"client_id":1,"items":[]}`,                                          // missing advisor
		`{"client_id":1,"user_id":1,"items":[{"product_id":0,"quantity":1}]}`, // missing product
		`{"client_id":1,"user_id":1,"items":[{"product_id":1,"quantity":-1}]}`,
	}
	for i, body := range cases {
		w := httptest.NewRecorder()
		h.Create(w, jsonRequest(http.MethodPost, "/quotations/", body, &account))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("case %d: expected 400 got %d body=%s", i, w.Code, w.Body.String())
		}
	}
}

func TestQuotationForeignReferencesNotFound(t *testing.T) {
	db := setupTestDB(t)
	h := NewQuotationHandler(db, services.NewQuotationService(db), t.TempDir())
	accountA, advisorA, clientA, productA := seedTenant(t, db, "alpha")
	accountB, _, _, productB := seedTenant(t, db, "beta")

	// Creating against another account's product reads as 404, not 403.
	body := `{"client_id":` + strconv.Itoa(int(clientA.ID)) +
		`,"user_id":` + strconv.Itoa(int(advisorA.ID)) +
		`,"items":[{"product_id":` + strconv.Itoa(int(productB.ID)) + `,"quantity":1}]}`
	w := httptest.NewRecorder()
	h.Create(w, jsonRequest(http.MethodPost, "/quotations/", body, &accountA))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}

	// Seed a quotation for account A, then read it as account B.
	svc := services.NewQuotationService(db)
	q, err := svc.Create(accountA.ID, services.CreateInput{
		ClientID: clientA.ID, UserID: advisorA.ID,
		Items: []services.ItemInput{{ProductID: productA.ID, UnitPrice: 10, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("seed quotation: %v", err)
	}
	req := jsonRequest(http.MethodGet, "/quotations/1", "", &accountB)
	req.SetPathValue("id", strconv.Itoa(int(q.ID)))
	w = httptest.NewRecorder()
	h.Get(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign quotation, got %d", w.Code)
	}
}

func TestQuotationListPaginated(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewQuotationService(db)
	h := NewQuotationHandler(db, svc, t.TempDir())
	account, advisor, client, product := seedTenant(t, db, "alpha")

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(account.ID, services.CreateInput{
			ClientID: client.ID, UserID: advisor.ID,
			Items: []services.ItemInput{{ProductID: product.ID, UnitPrice: 10, Quantity: 1}},
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	w := httptest.NewRecorder()
	h.List(w, jsonRequest(http.MethodGet, "/quotations/?limit=2", "", &account))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var payload struct {
		Items  []models.Quotation `json:"items"`
		Total  int64              `json:"total"`
		Limit  int                `json:"limit"`
		Offset int                `json:"offset"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Total != 3 || payload.Limit != 2 || len(payload.Items) != 2 {
		t.Fatalf("got total=%d limit=%d items=%d", payload.Total, payload.Limit, len(payload.Items))
	}
	// Newest first.
	if payload.Items[0].QuotationNumber != "3" {
		t.Fatalf("expected newest first, got %q", payload.Items[0].QuotationNumber)
	}
}

func TestQuotationUpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewQuotationService(db)
	h := NewQuotationHandler(db, svc, t.TempDir())
	account, advisor, client, product := seedTenant(t, db, "alpha")

	q, err := svc.Create(account.ID, services.CreateInput{
		ClientID: client.ID, UserID: advisor.ID,
		Items: []services.ItemInput{{ProductID: product.ID, UnitPrice: 10, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	id := strconv.Itoa(int(q.ID))

	req := jsonRequest(http.MethodPut, "/quotations/"+id, `{"status":"sent"}`, &account)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var updated models.Quotation
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Status != models.QuotationStatusSent {
		t.Fatalf("expected sent, got %q", updated.Status)
	}

	req = jsonRequest(http.MethodDelete, "/quotations/"+id, "", &account)
	req.SetPathValue("id", id)
	w = httptest.NewRecorder()
	h.Delete(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if err := db.First(&models.Quotation{}, q.ID).Error; err == nil {
		t.Fatalf("expected quotation gone")
	}
}

func TestQuotationPDF(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewQuotationService(db)
	h := NewQuotationHandler(db, svc, t.TempDir())
	account, advisor, client, product := seedTenant(t, db, "alpha")

	q, err := svc.Create(account.ID, services.CreateInput{
		ClientID: client.ID, UserID: advisor.ID, TaxPercentage: 16,
		Items: []services.ItemInput{{ProductID: product.ID, Description: "Widget", UnitPrice: 10, Quantity: 3, IsTaxable: true}},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	id := strconv.Itoa(int(q.ID))
	req := jsonRequest(http.MethodGet, "/quotations/"+id+"/pdf", "", &account)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	h.PDF(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	if w.Body.Len() == 0 || string(w.Body.Bytes()[:4]) != "%PDF" {
		t.Fatalf("expected a PDF document, got %d bytes", w.Body.Len())
	}
}
