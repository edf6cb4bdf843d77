package util

import "encoding/json"

// JSONString best-effort marshal for log lines; errors become ""
func JSONString(v interface{}) string {
	data, _ := json.Marshal(v)
	return string(data)
}

func JSONPretty(v interface{}) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}
