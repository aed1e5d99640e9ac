package client

import (
	"fmt"
	"strings"

	"gatepass-app/utils"
)

// Historic API responses carried PascalCase keys while the current server
// emits camelCase. The alias tables below let both shapes land in the same
// canonical structs, resolved once at the response boundary.

func pickString(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			switch t := v.(type) {
			case string:
				return t
			case float64:
				return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", t), "0"), ".")
			default:
				return fmt.Sprintf("%v", t)
			}
		}
	}
	return ""
}

func pickValue(m map[string]interface{}, keys ...string) interface{} {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return nil
}

func pickInt(m map[string]interface{}, keys ...string) int {
	switch t := pickValue(m, keys...).(type) {
	case float64:
		return int(t)
	case string:
		var n int
		fmt.Sscanf(t, "%d", &n)
		return n
	default:
		return 0
	}
}

func normalizeDestination(m map[string]interface{}) Destination {
	return Destination{
		ID:              pickString(m, "id", "Id", "ID"),
		DestinationName: pickString(m, "destinationName", "DestinationName"),
		DestinationCode: pickString(m, "destinationCode", "DestinationCode"),
		EmailID:         pickString(m, "emailID", "EmailID", "emailId"),
		IsActive:        utils.CoerceBool(pickValue(m, "isActive", "IsActive"), true),
	}
}

func normalizeGatePassItem(m map[string]interface{}) GatePassItem {
	return GatePassItem{
		SlNo:        pickInt(m, "slNo", "SlNo"),
		Description: pickString(m, "description", "Description"),
		MakeItem:    pickString(m, "makeItem", "MakeItem"),
		Model:       pickString(m, "model", "Model"),
		SerialNo:    pickString(m, "serialNo", "SerialNo"),
		Qty:         pickInt(m, "qty", "Qty"),
	}
}

func normalizeGatePass(m map[string]interface{}) GatePass {
	pass := GatePass{
		ID:            pickString(m, "id", "Id", "ID"),
		GatepassNo:    pickString(m, "gatepassNo", "GatepassNo"),
		Date:          pickString(m, "date", "Date"),
		Destination:   pickString(m, "destination", "Destination"),
		DestinationID: pickString(m, "destinationId", "DestinationID", "DestinationId"),
		CarriedBy:     pickString(m, "carriedBy", "CarriedBy"),
		Through:       pickString(m, "through", "Through"),
		MobileNo:      pickString(m, "mobileNo", "MobileNo"),
		IsEnable:      utils.CoerceBool(pickValue(m, "isEnable", "IsEnable"), true),
		Returnable:    utils.CoerceBool(pickValue(m, "returnable", "Returnable"), false),
		CreatedBy:     pickString(m, "createdBy", "CreatedBy"),
		UserName:      pickString(m, "userName", "UserName"),
	}

	if raw, ok := pickValue(m, "items", "Items").([]interface{}); ok {
		for _, entry := range raw {
			if item, ok := entry.(map[string]interface{}); ok {
				pass.Items = append(pass.Items, normalizeGatePassItem(item))
			}
		}
	}
	return pass
}
