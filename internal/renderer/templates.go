package renderer

const alertsHeader = `<html>
<head>
    <meta charset="utf-8">
    <title>Sreality Alerts History</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; background: #f5f5f5; }
        h1 { color: #333; border-bottom: 3px solid #0066cc; padding-bottom: 10px; }
        .check-section { background: white; padding: 20px; margin: 20px 0; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,0.1); }
        .check-header { color: #0066cc; border-bottom: 2px solid #eee; padding-bottom: 10px; margin-bottom: 15px; }
        .property { background: #fafafa; border: 1px solid #ddd; padding: 15px; margin: 15px 0; border-radius: 5px; display: flex; gap: 15px; }
        .property-image { flex-shrink: 0; width: 200px; height: 150px; object-fit: cover; border-radius: 4px; }
        .property-details { flex-grow: 1; }
        .property h3 { margin-top: 0; color: #333; }
        .property a { color: #0066cc; text-decoration: none; }
        .new { border-left: 4px solid #4caf50; }
        .price-drop { border-left: 4px solid #ff9800; }
        .no-results { color: #999; font-style: italic; }
    </style>
</head>
<body>
    <h1>Sreality Property Alerts - Complete History</h1>
`

const alertsFooter = `</body>
</html>
`

const alertsSectionTmpl = `
    <div class="check-section">
        <h2 class="check-header">Check: {{.Timestamp}}</h2>
{{- if .New}}
        <h3>New Properties ({{len .New}})</h3>
{{- range .New}}
        <div class="property new">
            {{- if .ImagePath}}
            <img src="{{.ImagePath}}" class="property-image" alt="Property photo">
            {{- end}}
            <div class="property-details">
                <h3><a href="{{.Listing.URL}}" target="_blank">{{.Listing.Name}}</a></h3>
                <p><strong>Price:</strong> {{price .Listing.Price}}</p>
                <p><strong>Area:</strong> {{.Listing.Area}} m²</p>
                <p><strong>Location:</strong> {{.Listing.Locality}}</p>
                <p><strong>Description:</strong> {{.Listing.Description}}</p>
            </div>
        </div>
{{- end}}
{{- end}}
{{- if .PriceChanged}}
        <h3>Price Changes ({{len .PriceChanged}})</h3>
{{- range .PriceChanged}}
        <div class="property price-drop">
            {{- if .ImagePath}}
            <img src="{{.ImagePath}}" class="property-image" alt="Property photo">
            {{- end}}
            <div class="property-details">
                <h3><a href="{{.Change.Listing.URL}}" target="_blank">{{.Change.Listing.Name}}</a></h3>
                <p><strong>{{if lt .Change.Delta 0}}Reduced{{else}}Increased{{end}}:</strong> {{price (abs .Change.Delta)}}</p>
                <p><strong>Old Price:</strong> {{price .Change.OldPrice}}</p>
                <p><strong>New Price:</strong> {{price .Change.NewPrice}}</p>
                <p><strong>Location:</strong> {{.Change.Listing.Locality}}</p>
            </div>
        </div>
{{- end}}
{{- end}}
{{- if and (not .New) (not .PriceChanged)}}
        <p class="no-results">No new properties or price changes found in this check.</p>
{{- end}}
    </div>
`

const catalogTmpl = `<html>
<head>
    <meta charset="utf-8">
    <title>Sreality - All Properties Catalog</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; background: #f5f5f5; }
        h1 { color: #333; border-bottom: 3px solid #0066cc; padding-bottom: 10px; }
        .summary { background: white; padding: 15px; margin: 20px 0; border-radius: 8px; }
        .property { background: white; border: 1px solid #ddd; padding: 15px; margin: 15px 0; border-radius: 5px; display: flex; gap: 15px; }
        .property-image { flex-shrink: 0; width: 200px; height: 150px; object-fit: cover; border-radius: 4px; }
        .property-details { flex-grow: 1; }
        .property a { color: #0066cc; text-decoration: none; }
        .timestamp { color: #666; font-size: 0.9em; }
    </style>
</head>
<body>
    <h1>Complete Property Catalog</h1>
    <div class="summary">
        <p><strong>Total Properties:</strong> {{len .Listings}}</p>
        <p class="timestamp">Last updated: {{.Timestamp}}</p>
    </div>
{{- range .Listings}}
    <div class="property">
        {{- if .ImagePath}}
        <img src="{{.ImagePath}}" class="property-image" alt="Property photo">
        {{- end}}
        <div class="property-details">
            <h3><a href="{{.Listing.URL}}" target="_blank">{{.Listing.Name}}</a></h3>
            <p><strong>Price:</strong> {{price .Listing.Price}}</p>
            <p><strong>Area:</strong> {{.Listing.Area}} m²</p>
            <p><strong>Location:</strong> {{.Listing.Locality}}</p>
            <p><strong>Description:</strong> {{.Listing.Description}}</p>
        </div>
    </div>
{{- end}}
</body>
</html>
`

const removedTmpl = `<html>
<head>
    <meta charset="utf-8">
    <title>Sreality - Removed Properties</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; background: #f5f5f5; }
        h1 { color: #333; border-bottom: 3px solid #cc0000; padding-bottom: 10px; }
        .summary { background: white; padding: 15px; margin: 20px 0; border-radius: 8px; }
        .property { background: white; border: 1px solid #ddd; border-left: 4px solid #cc0000; padding: 15px; margin: 15px 0; border-radius: 5px; display: flex; gap: 15px; opacity: 0.8; }
        .property-image { flex-shrink: 0; width: 200px; height: 150px; object-fit: cover; border-radius: 4px; filter: grayscale(30%); }
        .property-details { flex-grow: 1; }
        .removed-badge { background: #cc0000; color: white; padding: 4px 8px; border-radius: 3px; font-size: 12px; margin-left: 10px; }
        .timestamp { color: #666; font-size: 0.9em; }
    </style>
</head>
<body>
    <h1>Removed Properties (Likely Sold)</h1>
    <div class="summary">
        <p><strong>Total Removed:</strong> {{len .Listings}}</p>
        <p class="timestamp">Last checked: {{.Timestamp}}</p>
    </div>
{{- range .Listings}}
    <div class="property">
        {{- if .ImagePath}}
        <img src="{{.ImagePath}}" class="property-image" alt="Property photo">
        {{- end}}
        <div class="property-details">
            <h3><a href="{{.Listing.URL}}" target="_blank">{{.Listing.Name}}</a><span class="removed-badge">REMOVED</span></h3>
            <p><strong>Last Price:</strong> {{price .Listing.Price}}</p>
            <p><strong>Area:</strong> {{.Listing.Area}} m²</p>
            <p><strong>Location:</strong> {{.Listing.Locality}}</p>
            <p class="timestamp"><strong>Last seen:</strong> {{lastSeen .Listing.ObservedAt}}</p>
        </div>
    </div>
{{- end}}
</body>
</html>
`

const historyTmpl = `<html>
<head>
    <meta charset="utf-8">
    <title>Sreality - Property History</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; background: #f5f5f5; }
        h1 { color: #333; border-bottom: 3px solid #0066cc; padding-bottom: 10px; }
        .summary { background: white; padding: 15px; margin: 20px 0; border-radius: 8px; }
        .property-history { background: white; border: 1px solid #ddd; padding: 20px; margin: 20px 0; border-radius: 8px; }
        .property-header { display: flex; gap: 15px; margin-bottom: 20px; border-bottom: 2px solid #eee; }
        .property-image { flex-shrink: 0; width: 150px; height: 112px; object-fit: cover; border-radius: 4px; }
        .snapshot { background: #f9f9f9; border-left: 3px solid #0066cc; padding: 8px 12px; margin: 5px 0; font-size: 13px; }
        .snapshot.price-change { border-left-color: #ff9800; background: #fff8f0; font-weight: bold; }
        .price-up { color: #cc0000; }
        .price-down { color: #4caf50; }
        .snapshot-date { display: inline-block; width: 130px; font-weight: 600; }
        .timestamp { color: #666; font-size: 0.9em; }
    </style>
</head>
<body>
    <h1>Complete Property History &amp; Changes</h1>
    <div class="summary">
        <p><strong>Properties Tracked:</strong> {{len .Entries}}</p>
        <p class="timestamp">Generated: {{.Timestamp}}</p>
    </div>
{{- range .Entries}}
    <div class="property-history">
        <div class="property-header">
            {{- if .ImagePath}}
            <img src="{{.ImagePath}}" class="property-image" alt="Property photo">
            {{- end}}
            <div>
                <h2 style="margin-top: 0;"><a href="{{.Latest.URL}}" target="_blank">{{.Latest.Name}}</a></h2>
                <p><strong>Location:</strong> {{.Latest.Locality}}</p>
                <p><strong>Area:</strong> {{.Latest.Area}} m²</p>
                <p><strong>Total Snapshots:</strong> {{len .Snapshots}}</p>
            </div>
        </div>
{{- range .Snapshots}}
        <div class="snapshot{{if .Changed}} price-change{{end}}">
            <span class="snapshot-date">#{{.Index}} {{.Date}}</span>
            <span>{{price .Price}}{{if .Changed}} &rarr; <span class="{{if lt .Delta 0}}price-down{{else}}price-up{{end}}">{{if lt .Delta 0}}-{{else}}+{{end}}{{price (abs .Delta)}}</span>{{end}}</span>
        </div>
{{- end}}
    </div>
{{- end}}
</body>
</html>
`
