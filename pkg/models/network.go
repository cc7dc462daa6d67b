package models

// Provider describes a mnemonic-backed HD wallet provider. Mnemonic holds the
// path of the file the phrase is stored in, never the phrase itself.
type Provider struct {
	Mnemonic string `json:"mnemonic" yaml:"mnemonic"`
	URL      string `json:"url" yaml:"url"`
}

// NetworkOptions are the per-network settings consumed by truffle-config.js
// and hardhat.config networks.
type NetworkOptions struct {
	Host      string    `json:"host,omitempty" yaml:"host,omitempty"`
	Port      int       `json:"port,omitempty" yaml:"port,omitempty"`
	NetworkID string    `json:"network_id" yaml:"network_id"`
	Gas       *uint64   `json:"gas,omitempty" yaml:"gas,omitempty"`
	GasPrice  *uint64   `json:"gasPrice,omitempty" yaml:"gasPrice,omitempty"`
	Provider  *Provider `json:"provider,omitempty" yaml:"provider,omitempty"`
}

// TruffleNetwork is one named entry of the truffle networks section.
type TruffleNetwork struct {
	Name    string         `json:"name" yaml:"name"`
	Options NetworkOptions `json:"options" yaml:"options"`
}
