package api

import (
	"encoding/json"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const codeLength = 8

// generateJoinCode creates a short alphanumeric code for joining battles.
func generateJoinCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}

var joinCodeRegex = regexp.MustCompile("^[A-Z0-9]{8}$")

func normalizeJoinCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// parseBattleID parses the numeric battle ID path parameter.
func parseBattleID(c *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(c.Param("battleID"))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// normalizeTimestamps recursively renames GORM timestamp keys from CamelCase
// (CreatedAt, UpdatedAt, DeletedAt) to snake_case keys (created_at, updated_at,
// deleted_at) so clients consistently receive snake_case timestamps.
func normalizeTimestamps(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeTimestamps(val)
		}
		if val, ok := vv["CreatedAt"]; ok {
			vv["created_at"] = val
			delete(vv, "CreatedAt")
		}
		if val, ok := vv["UpdatedAt"]; ok {
			vv["updated_at"] = val
			delete(vv, "UpdatedAt")
		}
		if val, ok := vv["DeletedAt"]; ok {
			vv["deleted_at"] = val
			delete(vv, "DeletedAt")
		}
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeTimestamps(vv[i])
		}
		return vv
	default:
		return v
	}
}

// MarshalIntoSnakeTimestamps marshals the given value into JSON, then decodes
// into an interface{} and normalizes timestamp keys to snake_case.
func MarshalIntoSnakeTimestamps(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return normalizeTimestamps(out), nil
}

// MarshalForContext behaves like MarshalIntoSnakeTimestamps but also hides
// addresses that do not belong to the authenticated session user: email
// fields are dropped, and email-shaped values anywhere else (turn holder,
// side owners, log actors and text, winner) are masked, so other players'
// emails are never exposed.
func MarshalForContext(c *gin.Context, v interface{}) (interface{}, error) {
	out, err := MarshalIntoSnakeTimestamps(v)
	if err != nil {
		return nil, err
	}
	currentEmail := ""
	if c != nil {
		currentEmail = sessionEmail(c)
	}
	redactEmails(out, currentEmail)
	return maskOtherEmails(out, currentEmail), nil
}

// redactEmails walks a marshalled JSON structure and removes any field whose
// key contains "email" (case-insensitive) unless its value equals
// currentEmail. Removal deletes the key entirely so responses do not include
// email fields for other users.
func redactEmails(v interface{}, currentEmail string) {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			lower := strings.ToLower(k)
			if strings.Contains(lower, "email") {
				if s, ok := val.(string); ok {
					if currentEmail != "" && s == currentEmail {
						continue
					}
				}
				delete(vv, k)
				continue
			}
			redactEmails(val, currentEmail)
		}
	case []interface{}:
		for i := range vv {
			redactEmails(vv[i], currentEmail)
		}
	default:
	}
}

var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+`)

// maskOtherEmails rewrites every email-shaped token that is not the viewer's
// own address, including tokens embedded in log text. Masked addresses keep
// one character of the local part so the two participants stay
// distinguishable in a transcript.
func maskOtherEmails(v interface{}, currentEmail string) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = maskOtherEmails(val, currentEmail)
		}
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = maskOtherEmails(vv[i], currentEmail)
		}
		return vv
	case string:
		return emailPattern.ReplaceAllStringFunc(vv, func(m string) string {
			if currentEmail != "" && m == currentEmail {
				return m
			}
			return maskEmail(m)
		})
	default:
		return v
	}
}

func maskEmail(s string) string {
	local, _, ok := strings.Cut(s, "@")
	if !ok || local == "" {
		return "***"
	}
	return local[:1] + "***"
}
