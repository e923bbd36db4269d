// Package v1 implements the enriched HTTP API.
package v1

import "time"

// ServerVersion is reported in envelope metadata and on the root endpoint.
const ServerVersion = "2.0.0"

// DataSource names the origin of the data served by this API.
const DataSource = "PokeAPI + AI Strategic Analysis"

// Capabilities lists the strategic operations this server exposes.
func Capabilities() []string {
	return []string{
		"pokemon_data",
		"ai_descriptions",
		"battle_analysis",
		"counter_suggestions",
	}
}

// Metadata describes the server inside an envelope response.
type Metadata struct {
	ServerVersion string   `json:"server_version"`
	DataSource    string   `json:"data_source"`
	Capabilities  []string `json:"capabilities"`
}

// Envelope wraps agent-facing responses with success and instruction fields.
type Envelope struct {
	Success           bool     `json:"success"`
	Data              any      `json:"data"`
	Metadata          Metadata `json:"metadata"`
	Timestamp         string   `json:"timestamp"`
	AgentInstructions string   `json:"agent_instructions,omitempty"`
}

// NewEnvelope builds a successful envelope around data.
func NewEnvelope(data any, instructions string) Envelope {
	return Envelope{
		Success: true,
		Data:    data,
		Metadata: Metadata{
			ServerVersion: ServerVersion,
			DataSource:    DataSource,
			Capabilities:  Capabilities(),
		},
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
		AgentInstructions: instructions,
	}
}
