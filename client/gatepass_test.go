package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"
)

func destListJSON() string {
	return `{"success":true,"message":"ok","data":[
		{"id":"100","destinationName":"Head Office","destinationCode":"HO","isActive":1},
		{"id":"200","destinationName":"Salt Lake Lab","destinationCode":"LAB-SALTLAKE","isActive":1}
	]}`
}

func TestCreateGatePassRoundTrip(t *testing.T) {
	var captured map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "GET" && r.URL.Path == "/api/v1/dest/":
			w.Write([]byte(destListJSON()))
		case r.Method == "POST" && r.URL.Path == "/api/v1/gatepass/":
			if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
				t.Errorf("decode payload: %v", err)
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success":    true,
				"message":    "Gate pass created successfully",
				"gatePassId": captured["id"],
				"gatepassNo": "SDLGP05032024-0001",
			})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := New(server.URL)
	created, err := c.CreateGatePass(context.Background(), GatePassInput{
		Date:        time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC),
		Destination: "ho",
		CarriedBy:   "R. Sen",
		MobileNo:    "9830012345",
		Items: []GatePassItem{
			{Description: "  Centrifuge  ", Qty: 0},
			{Description: "", SerialNo: "SN-44", Qty: 3},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.GatepassNo != "SDLGP05032024-0001" {
		t.Fatalf("unexpected pass number: %s", created.GatepassNo)
	}
	if created.ID == "" {
		t.Fatalf("expected the provisional id back")
	}

	// wire date is the IST instant with explicit +05:30 offset
	date, _ := captured["date"].(string)
	istLayout := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}\+05:30$`)
	if !istLayout.MatchString(date) {
		t.Fatalf("date not in IST wire format: %q", date)
	}
	if date != "2024-03-05T16:00:00.000+05:30" {
		t.Fatalf("expected converted IST instant, got %q", date)
	}

	// destination resolved from the cached reference list, case-insensitive
	if got := captured["destinationId"].(float64); got != 100 {
		t.Fatalf("expected destinationId 100, got %v", got)
	}

	items := captured["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	first := items[0].(map[string]interface{})
	if first["description"] != "Centrifuge" {
		t.Fatalf("description not trimmed: %v", first["description"])
	}
	if first["qty"].(float64) != 1 {
		t.Fatalf("qty not floored: %v", first["qty"])
	}
	if first["slNo"].(float64) != 1 {
		t.Fatalf("slNo not assigned: %v", first["slNo"])
	}
	second := items[1].(map[string]interface{})
	if second["description"] != "N/A" {
		t.Fatalf("blank description not placeholdered: %v", second["description"])
	}
	if second["slNo"].(float64) != 2 {
		t.Fatalf("second slNo wrong: %v", second["slNo"])
	}
}

func TestCreateGatePassRollsBackOnServerRefusal(t *testing.T) {
	var deleted string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "GET" && r.URL.Path == "/api/v1/dest/":
			w.Write([]byte(`{"success":true,"data":[]}`))
		case r.Method == "POST" && r.URL.Path == "/api/v1/gatepass/":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success":    false,
				"message":    "Failed to allocate gate pass number",
				"gatePassId": "partial-123",
			})
		case r.Method == "DELETE":
			deleted = r.URL.Path
			w.Write([]byte(`{"success":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.CreateGatePass(context.Background(), GatePassInput{
		Date:        "2024-03-05T10:30:00.000+05:30",
		Destination: "HO",
		CarriedBy:   "R. Sen",
	})

	var creationErr *CreationError
	if !errors.As(err, &creationErr) {
		t.Fatalf("expected CreationError, got %v", err)
	}
	if deleted != "/api/v1/gatepass/partial-123" {
		t.Fatalf("expected compensating delete of the partial record, got %q", deleted)
	}
}

func TestCreateGatePassInvalidDate(t *testing.T) {
	c := New("http://unused.invalid")

	_, err := c.CreateGatePass(context.Background(), GatePassInput{Date: 12345})

	var creationErr *CreationError
	if !errors.As(err, &creationErr) {
		t.Fatalf("expected CreationError, got %v", err)
	}
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected wrapped FormatError, got %v", err)
	}
}

func TestFetchGatePassesNormalizesDualCasedFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/gatepass/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"total":2,"data":[
			{"Id":"a1","GatepassNo":"SDLGP05032024-0001","Destination":"HO",
			 "CarriedBy":"R. Sen","IsEnable":1,"Returnable":"0",
			 "Items":[{"SlNo":1,"Description":"Probe","Qty":2}]},
			{"id":"a2","gatepassNo":"SDLGP05032024-0002","destination":"LAB",
			 "carriedBy":"S. Das","isEnable":true,"returnable":true,
			 "items":[{"slNo":1,"description":"Kit","qty":1}]}
		]}`))
	}))
	defer server.Close()

	c := New(server.URL)
	passes, total, err := c.FetchGatePasses(context.Background(), "", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(passes) != 2 {
		t.Fatalf("expected 2 passes, got total=%d len=%d", total, len(passes))
	}

	legacy := passes[0]
	if legacy.ID != "a1" || legacy.GatepassNo != "SDLGP05032024-0001" {
		t.Fatalf("PascalCase fields not normalized: %+v", legacy)
	}
	if !legacy.IsEnable {
		t.Fatalf("IsEnable=1 must coerce to true")
	}
	if legacy.Returnable {
		t.Fatalf(`Returnable="0" must coerce to false`)
	}
	if len(legacy.Items) != 1 || legacy.Items[0].Description != "Probe" || legacy.Items[0].Qty != 2 {
		t.Fatalf("PascalCase items not normalized: %+v", legacy.Items)
	}

	current := passes[1]
	if current.ID != "a2" || current.CarriedBy != "S. Das" || !current.Returnable {
		t.Fatalf("camelCase fields not normalized: %+v", current)
	}
}

func TestFetchGatePassesKeepsSnowflakeScaleDestinationID(t *testing.T) {
	// the list path decodes into generic maps, where a JSON number would
	// arrive as float64 and lose digits past 2^53
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"total":1,"data":[
			{"id":"a1","gatepassNo":"SDLGP05032024-0001",
			 "destinationId":"1881942732142415873","isEnable":true}
		]}`))
	}))
	defer server.Close()

	c := New(server.URL)
	passes, _, err := c.FetchGatePasses(context.Background(), "", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if passes[0].DestinationID != "1881942732142415873" {
		t.Fatalf("destinationId corrupted at the boundary: %q", passes[0].DestinationID)
	}
}

func TestCreateGatePassMapsAllocationRefusal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "GET" && r.URL.Path == "/api/v1/dest/":
			w.Write([]byte(`{"success":true,"data":[]}`))
		case r.Method == "POST" && r.URL.Path == "/api/v1/gatepass/":
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"success":false,"code":"SEQUENCE_ALLOCATION",
				"message":"Failed to allocate gate pass number"}`))
		case r.Method == "DELETE":
			w.Write([]byte(`{"success":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.CreateGatePass(context.Background(), GatePassInput{
		Date:        "2024-03-05T10:30:00.000+05:30",
		Destination: "HO",
		CarriedBy:   "R. Sen",
	})

	var creationErr *CreationError
	if !errors.As(err, &creationErr) {
		t.Fatalf("expected CreationError, got %v", err)
	}
	var seqErr *SequenceResolutionError
	if !errors.As(err, &seqErr) {
		t.Fatalf("expected wrapped SequenceResolutionError, got %v", err)
	}
}

func TestCreateGatePassRejectsMalformedDateString(t *testing.T) {
	c := New("http://unused.invalid")

	_, err := c.CreateGatePass(context.Background(), GatePassInput{
		Date:        "05/03/2024",
		Destination: "HO",
		CarriedBy:   "R. Sen",
	})

	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError for a string without a day key, got %v", err)
	}
}

func TestUpdateGatePassSurfacesRefusal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "GET" && r.URL.Path == "/api/v1/dest/":
			w.Write([]byte(`{"success":true,"data":[]}`))
		case r.Method == "PUT":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"message": "Gate pass is disabled",
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := New(server.URL)
	err := c.UpdateGatePass(context.Background(), "a1", GatePassInput{
		Date:        "2024-03-05T10:30:00.000+05:30",
		Destination: "HO",
		CarriedBy:   "R. Sen",
	})

	var updateErr *UpdateError
	if !errors.As(err, &updateErr) {
		t.Fatalf("expected UpdateError, got %v", err)
	}
	if updateErr.GatePassID != "a1" {
		t.Fatalf("expected id a1 in error, got %s", updateErr.GatePassID)
	}
}

func TestTempIDShape(t *testing.T) {
	shape := regexp.MustCompile(`^[0-9a-z]+-[0-9a-z]+$`)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		id := tempID()
		if !shape.MatchString(id) {
			t.Fatalf("unexpected temp id shape: %q", id)
		}
		seen[id] = true
	}
	if len(seen) < 2 {
		t.Fatalf("temp ids should vary, got %v", seen)
	}
}
