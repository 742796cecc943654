package models

// AIAnalysis is the result of analyzing the uploaded photo batch. The
// suggested vehicle and mover count overwrite the order's prior values when
// the analysis completes.
type AIAnalysis struct {
	Volume            string   `json:"volume"`
	ItemCount         int      `json:"itemCount"`
	ItemTypes         []string `json:"itemTypes"`
	DisassemblyNeeded bool     `json:"disassemblyNeeded"`
	SuggestedVehicle  string   `json:"suggestedVehicle"`
	SuggestedMovers   int      `json:"suggestedMovers"`
	EstimatedPrice    int      `json:"estimatedPrice"`
}
