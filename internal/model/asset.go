package model

// AssetMetadata is the static display information for a tracked asset.
type AssetMetadata struct {
	ID        string `json:"id"`
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	IconClass string `json:"icon_class"`
}

var assets = []AssetMetadata{
	{ID: "bitcoin", Symbol: "BTC", Name: "BTC", Icon: "₿", IconClass: "icon-btc"},
	{ID: "ethereum", Symbol: "ETH", Name: "ETH", Icon: "Ξ", IconClass: "icon-eth"},
	{ID: "binancecoin", Symbol: "BNB", Name: "BNB", Icon: "BNB", IconClass: "icon-bnb"},
	{ID: "ripple", Symbol: "XRP", Name: "XRP", Icon: "XRP", IconClass: "icon-xrp"},
	{ID: "dogecoin", Symbol: "DOGE", Name: "DOGE", Icon: "Ð", IconClass: "icon-doge"},
	{ID: "tether", Symbol: "USDT", Name: "USDT", Icon: "₮", IconClass: "icon-usdt"},
	{ID: "usd-coin", Symbol: "USDC", Name: "USDC", Icon: "₵", IconClass: "icon-usdc"},
}

var assetIndex = func() map[string]AssetMetadata {
	m := make(map[string]AssetMetadata, len(assets))
	for _, a := range assets {
		m[a.ID] = a
	}
	return m
}()

// Assets returns the tracked assets in display order.
func Assets() []AssetMetadata {
	out := make([]AssetMetadata, len(assets))
	copy(out, assets)
	return out
}

// AssetIDs returns the provider identifiers of the tracked assets, in order.
func AssetIDs() []string {
	ids := make([]string, len(assets))
	for i, a := range assets {
		ids[i] = a.ID
	}
	return ids
}

// LookupAsset finds the metadata entry for a provider identifier.
func LookupAsset(id string) (AssetMetadata, bool) {
	a, ok := assetIndex[id]
	return a, ok
}
