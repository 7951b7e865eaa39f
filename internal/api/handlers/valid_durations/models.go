package valid_durations

// DurationsResponse lists the selectable durations for a mode. A null
// list means the mode is not quantized and any positive duration is
// accepted.
type DurationsResponse struct {
	Mode      string `json:"mode"`
	Durations []int  `json:"durations"`
}
