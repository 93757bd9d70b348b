// Package reference serves static lookup content (code charts, bulletins,
// maintenance records) and the drill-down drawer that navigates it.
package reference

type ViewKind string

const (
	KindTable ViewKind = "table"
	KindList  ViewKind = "list"
)

// Row is a table row or list item. Only rows with a Link can be drilled into.
type Row struct {
	Cells []string `json:"cells"`
	Link  string   `json:"link,omitempty"`
}

type View struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Kind    ViewKind `json:"kind"`
	Columns []string `json:"columns,omitempty"`
	Rows    []Row    `json:"rows"`
}

func (v View) Links(target string) bool {
	for _, r := range v.Rows {
		if r.Link != "" && r.Link == target {
			return true
		}
	}
	return false
}

type Entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Catalog is read-only after construction.
type Catalog struct {
	entries []Entry
	views   map[string]View
}

func NewCatalog(entries []string, views []View) *Catalog {
	c := &Catalog{views: make(map[string]View, len(views))}
	for _, v := range views {
		c.views[v.ID] = v
	}
	for _, id := range entries {
		if v, ok := c.views[id]; ok {
			c.entries = append(c.entries, Entry{ID: v.ID, Title: v.Title})
		}
	}
	return c
}

func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

func (c *Catalog) IsEntry(id string) bool {
	for _, e := range c.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

func (c *Catalog) View(id string) (View, bool) {
	v, ok := c.views[id]
	return v, ok
}

// DefaultCatalog is the built-in reference content.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		[]string{"obd2-codes", "tsb", "maintenance"},
		[]View{
			{
				ID: "obd2-codes", Title: "OBD-II Code Chart", Kind: KindTable,
				Columns: []string{"Code", "Description", "Severity"},
				Rows: []Row{
					{Cells: []string{"P0171", "System Too Lean (Bank 1)", "Medium"}, Link: "code-P0171"},
					{Cells: []string{"P0300", "Random/Multiple Cylinder Misfire Detected", "High"}, Link: "code-P0300"},
					{Cells: []string{"P0420", "Catalyst System Efficiency Below Threshold (Bank 1)", "Medium"}, Link: "code-P0420"},
					{Cells: []string{"P0442", "EVAP System Leak Detected (small leak)", "Low"}},
				},
			},
			{
				ID: "code-P0171", Title: "P0171 - System Too Lean (Bank 1)", Kind: KindList,
				Rows: []Row{
					{Cells: []string{"Inspect intake ducting and PCV hoses for vacuum leaks"}},
					{Cells: []string{"Clean the mass airflow sensor"}, Link: "proc-maf-clean"},
					{Cells: []string{"Check fuel pressure at the rail (40-60 PSI typical)"}},
					{Cells: []string{"Review short and long term fuel trims with a scan tool"}},
				},
			},
			{
				ID: "code-P0300", Title: "P0300 - Random/Multiple Cylinder Misfire", Kind: KindList,
				Rows: []Row{
					{Cells: []string{"Read misfire counters per cylinder"}},
					{Cells: []string{"Swap ignition coils between cylinders and re-test"}, Link: "proc-coil-swap"},
					{Cells: []string{"Inspect spark plugs for wear and fouling"}},
					{Cells: []string{"Check for vacuum leaks and low fuel pressure"}},
				},
			},
			{
				ID: "code-P0420", Title: "P0420 - Catalyst Efficiency Below Threshold", Kind: KindList,
				Rows: []Row{
					{Cells: []string{"Confirm no exhaust leaks upstream of the downstream O2 sensor"}},
					{Cells: []string{"Compare upstream and downstream O2 sensor waveforms"}},
					{Cells: []string{"Check for open TSBs on catalyst monitoring calibration"}, Link: "tsb"},
				},
			},
			{
				ID: "proc-maf-clean", Title: "Mass Airflow Sensor Cleaning", Kind: KindList,
				Rows: []Row{
					{Cells: []string{"Disconnect the battery and the MAF connector"}},
					{Cells: []string{"Remove the sensor from the intake tube"}},
					{Cells: []string{"Spray MAF cleaner on the sensing elements; do not touch them"}},
					{Cells: []string{"Let it air dry 10-15 minutes and reinstall"}},
				},
			},
			{
				ID: "proc-coil-swap", Title: "Ignition Coil Swap Test", Kind: KindList,
				Rows: []Row{
					{Cells: []string{"Note the cylinder reporting the misfire"}},
					{Cells: []string{"Swap its coil with an adjacent cylinder"}},
					{Cells: []string{"Clear codes and drive until the monitor runs"}},
					{Cells: []string{"If the misfire follows the coil, replace the coil"}},
				},
			},
			{
				ID: "tsb", Title: "Technical Service Bulletins", Kind: KindTable,
				Columns: []string{"Bulletin", "Subject", "Models"},
				Rows: []Row{
					{Cells: []string{"18-1234", "Brake squeal on light application", "2015-2018 sedans"}, Link: "tsb-18-1234"},
					{Cells: []string{"19-0457", "Catalyst monitor recalibration", "2016-2019 2.4L"}, Link: "tsb-19-0457"},
					{Cells: []string{"20-0112", "Infotainment reboot loop", "2020 all"}},
				},
			},
			{
				ID: "tsb-18-1234", Title: "TSB 18-1234 - Brake Squeal", Kind: KindList,
				Rows: []Row{
					{Cells: []string{"Replace front pads with revised compound kit"}},
					{Cells: []string{"Apply shim grease to pad backing plates"}},
					{Cells: []string{"Torque caliper bolts to 25-35 ft-lbs"}},
				},
			},
			{
				ID: "tsb-19-0457", Title: "TSB 19-0457 - Catalyst Monitor Recalibration", Kind: KindList,
				Rows: []Row{
					{Cells: []string{"Verify P0420 with no other stored codes"}},
					{Cells: []string{"Reflash the engine control module with the latest calibration"}},
					{Cells: []string{"Complete a drive cycle and confirm readiness monitors"}},
				},
			},
			{
				ID: "maintenance", Title: "Maintenance Records", Kind: KindTable,
				Columns: []string{"Service", "Interval", "Last done"},
				Rows: []Row{
					{Cells: []string{"Engine oil and filter", "5,000 mi", "-"}},
					{Cells: []string{"Fuel filter", "30,000-40,000 mi", "-"}},
					{Cells: []string{"MAF sensor cleaning", "30,000 mi", "-"}, Link: "proc-maf-clean"},
				},
			},
		},
	)
}
