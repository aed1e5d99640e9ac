package client

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"gatepass-app/utils"
)

// istZone is the fixed +05:30 offset all wire dates are expressed in.
var istZone = time.FixedZone("IST", 5*3600+30*60)

const wireDateLayout = "2006-01-02T15:04:05.000-07:00"

type GatePassItem struct {
	SlNo        int    `json:"slNo"`
	Description string `json:"description"`
	MakeItem    string `json:"makeItem"`
	Model       string `json:"model"`
	SerialNo    string `json:"serialNo"`
	Qty         int    `json:"qty"`
}

type GatePass struct {
	ID            string         `json:"id"`
	GatepassNo    string         `json:"gatepassNo"`
	Date          string         `json:"date"`
	Destination   string         `json:"destination"`
	DestinationID string         `json:"destinationId"`
	CarriedBy     string         `json:"carriedBy"`
	Through       string         `json:"through"`
	MobileNo      string         `json:"mobileNo"`
	IsEnable      bool           `json:"isEnable"`
	Returnable    bool           `json:"returnable"`
	CreatedBy     string         `json:"createdBy"`
	UserName      string         `json:"userName"`
	Items         []GatePassItem `json:"items"`
}

// GatePassInput is what callers hand to Create/Update. Date accepts a
// time.Time or an already formatted wire string.
type GatePassInput struct {
	Date        interface{}
	Destination string
	CarriedBy   string
	Through     string
	MobileNo    string
	Returnable  bool
	Items       []GatePassItem
}

var (
	tempRandMu sync.Mutex
	tempRand   = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
)

// tempID builds the provisional client-side id: base-36 millisecond
// timestamp plus a base-36 random suffix.
func tempID() string {
	tempRandMu.Lock()
	suffix := tempRand.Uint32()
	tempRandMu.Unlock()
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + "-" +
		strconv.FormatUint(uint64(suffix), 36)
}

// wireDate renders the date in IST with the layout the server and the
// historic records use. Strings pass through unchanged once they prove they
// carry a derivable day key; anything else is a FormatError.
func wireDate(value interface{}) (string, error) {
	switch t := value.(type) {
	case string:
		if _, err := utils.ParseDateKey(t); err != nil {
			return "", &FormatError{Value: t, Err: err}
		}
		return t, nil
	case time.Time:
		if t.IsZero() {
			return "", &FormatError{Value: "zero time", Err: utils.ErrInvalidDate}
		}
		return t.In(istZone).Format(wireDateLayout), nil
	case nil:
		return time.Now().In(istZone).Format(wireDateLayout), nil
	default:
		return "", &FormatError{Value: fmt.Sprintf("%v", value), Err: utils.ErrInvalidDate}
	}
}

// normalizeInputItems mirrors the server-side normalization so records look
// the same no matter which side cleaned them first.
func normalizeInputItems(items []GatePassItem) []GatePassItem {
	if len(items) == 0 {
		items = []GatePassItem{{}}
	}
	out := make([]GatePassItem, 0, len(items))
	for i, item := range items {
		out = append(out, GatePassItem{
			SlNo:        i + 1,
			Description: utils.NormalizeText(item.Description),
			MakeItem:    utils.NormalizeText(item.MakeItem),
			Model:       utils.NormalizeText(item.Model),
			SerialNo:    utils.NormalizeText(item.SerialNo),
			Qty:         utils.NormalizeQty(item.Qty),
		})
	}
	return out
}

// resolveDestinationID looks the destination up in the cached reference
// list by case-insensitive code. An unknown destination resolves to 0 and
// lets the server apply its own fallback.
func (c *Client) resolveDestinationID(ctx context.Context, code string) int64 {
	destinations, err := c.Destinations(ctx, false, false)
	if err != nil {
		return 0
	}
	for _, d := range destinations {
		if strings.EqualFold(d.DestinationCode, code) {
			id, err := strconv.ParseInt(d.ID, 10, 64)
			if err != nil {
				return 0
			}
			return id
		}
	}
	return 0
}

type gatePassWriteResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Code       string `json:"code"`
	GatePassID string `json:"gatePassId"`
	GatepassNo string `json:"gatepassNo"`
}

// sequenceAllocationCode is the server's refusal code for a failed pass
// number allocation.
const sequenceAllocationCode = "SEQUENCE_ALLOCATION"

func (r gatePassWriteResponse) refusal() error {
	cause := fmt.Errorf("server refused: %s", r.Message)
	if r.Code == sequenceAllocationCode {
		return &SequenceResolutionError{Err: cause}
	}
	return cause
}

// CreateGatePass runs the creation flow: provisional id, client-side
// normalization, destination resolution against the cache, then a single
// POST. The pass number comes back from the server. On any failure the
// provisional id is abandoned and a best-effort rollback removes whatever
// the server may have kept.
func (c *Client) CreateGatePass(ctx context.Context, input GatePassInput) (*GatePass, error) {
	id := tempID()

	date, err := wireDate(input.Date)
	if err != nil {
		return nil, &CreationError{GatePassID: id, Err: err}
	}

	payload := map[string]interface{}{
		"id":            id,
		"date":          date,
		"destination":   strings.TrimSpace(input.Destination),
		"destinationId": c.resolveDestinationID(ctx, input.Destination),
		"carriedBy":     strings.TrimSpace(input.CarriedBy),
		"through":       input.Through,
		"mobileNo":      strings.TrimSpace(input.MobileNo),
		"returnable":    input.Returnable,
		"items":         normalizeInputItems(input.Items),
	}

	var resp gatePassWriteResponse
	if err := c.doJSON(ctx, "POST", "/api/v1/gatepass/", payload, &resp); err != nil {
		c.RollbackGatePass(ctx, id)
		if resp.Code == sequenceAllocationCode {
			err = &SequenceResolutionError{Err: err}
		}
		return nil, &CreationError{GatePassID: id, Err: err}
	}
	if !resp.Success {
		if resp.GatePassID != "" {
			c.RollbackGatePass(ctx, resp.GatePassID)
		}
		return nil, &CreationError{GatePassID: id, Err: resp.refusal()}
	}

	created := &GatePass{
		ID:         resp.GatePassID,
		GatepassNo: resp.GatepassNo,
		Date:       date,
		IsEnable:   true,
	}
	return created, nil
}

// RollbackGatePass is the compensating delete of the creation flow. It
// never surfaces an error; a stray record is preferable to failing the
// caller twice.
func (c *Client) RollbackGatePass(ctx context.Context, id string) {
	if id == "" {
		return
	}
	if err := c.doJSON(ctx, "DELETE", "/api/v1/gatepass/"+id, nil, nil); err != nil {
		log.Printf("gate pass rollback failed for %s: %v", id, err)
	}
}

type gatePassListResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Data    []map[string]interface{} `json:"data"`
	Total   int64                    `json:"total"`
}

// FetchGatePasses lists passes with optional server-side search and
// pagination, normalizing the dual-cased DTO fields at the boundary.
func (c *Client) FetchGatePasses(ctx context.Context, search string, page, limit int) ([]GatePass, int64, error) {
	params := url.Values{}
	if search != "" {
		params.Set("search", search)
	}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
		params.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/v1/gatepass/"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp gatePassListResponse
	if err := c.doJSON(ctx, "GET", path, nil, &resp); err != nil {
		return nil, 0, err
	}
	if !resp.Success {
		return nil, 0, fmt.Errorf("gate pass fetch rejected: %s", resp.Message)
	}

	out := make([]GatePass, 0, len(resp.Data))
	for _, raw := range resp.Data {
		out = append(out, normalizeGatePass(raw))
	}
	return out, resp.Total, nil
}

// UpdateGatePass reworks an existing record. Disabled records are rejected
// by the server and surface as an UpdateError.
func (c *Client) UpdateGatePass(ctx context.Context, id string, input GatePassInput) error {
	date, err := wireDate(input.Date)
	if err != nil {
		return &UpdateError{GatePassID: id, Err: err}
	}

	payload := map[string]interface{}{
		"date":          date,
		"destination":   strings.TrimSpace(input.Destination),
		"destinationId": c.resolveDestinationID(ctx, input.Destination),
		"carriedBy":     strings.TrimSpace(input.CarriedBy),
		"through":       input.Through,
		"mobileNo":      strings.TrimSpace(input.MobileNo),
		"returnable":    input.Returnable,
		"items":         normalizeInputItems(input.Items),
	}

	var resp gatePassWriteResponse
	if err := c.doJSON(ctx, "PUT", "/api/v1/gatepass/"+id, payload, &resp); err != nil {
		return &UpdateError{GatePassID: id, Err: err}
	}
	if !resp.Success {
		return &UpdateError{GatePassID: id, Err: fmt.Errorf("server refused: %s", resp.Message)}
	}
	return nil
}

// SetGatePassEnabled flips the enable flag used instead of deletion.
func (c *Client) SetGatePassEnabled(ctx context.Context, id string, enabled bool) error {
	payload := map[string]interface{}{"isEnable": enabled}

	var resp gatePassWriteResponse
	if err := c.doJSON(ctx, "PATCH", "/api/v1/gatepass/"+id+"/enable", payload, &resp); err != nil {
		return &UpdateError{GatePassID: id, Err: err}
	}
	if !resp.Success {
		return &UpdateError{GatePassID: id, Err: fmt.Errorf("server refused: %s", resp.Message)}
	}
	return nil
}
