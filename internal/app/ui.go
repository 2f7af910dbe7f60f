package app

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"yashubustudio/calibrator/calibrator"
)

const logDebounceInterval = 150 * time.Millisecond

var (
	statementFileExts = []string{".txt", ".csv", ".tsv"}
	corpusFileExts    = []string{".yaml", ".yml", ".json", ".csv", ".tsv", ".db", ".sqlite", ".sqlite3"}
	logLevelChoices   = []string{"debug", "info", "warn", "error"}
)

type tableColumn struct {
	Title  string
	Width  float32
	Render func(ResultRow) string
}

type uiState struct {
	svcMu   sync.RWMutex
	service *calibrator.Service
	cfg     calibrator.Config
	logger  *zap.Logger
	level   zap.AtomicLevel
	sink    *logSink

	w             fyne.Window
	input         *widget.Entry
	log           *widget.Entry
	report        *widget.Label
	status        *widget.Label
	progress      *widget.ProgressBar
	configSummary *widget.Label
	resTbl        *widget.Table
	columns       []tableColumn
	rows          []ResultRow
	statusBind    binding.String
	logBind       binding.String
	reportBind    binding.String
	progressBind  binding.Float
	logUpdateCh   chan struct{}

	analyzeBtn *widget.Button
	exportBtn  *widget.Button
	loadBtn    *widget.Button
	corpusBtn  *widget.Button
}

func buildUI(a fyne.App, svc *calibrator.Service, sink *logSink, logger *zap.Logger, level zap.AtomicLevel) *uiState {
	u := &uiState{service: svc, cfg: svc.Config(), sink: sink, logger: logger, level: level}
	u.w = a.NewWindow("Calibrator")

	u.statusBind = binding.NewString()
	_ = u.statusBind.Set("Ready")
	u.progressBind = binding.NewFloat()
	u.logBind = binding.NewString()
	u.reportBind = binding.NewString()
	u.startLogUpdater()
	sink.setOnWrite(u.requestLogFlush)

	u.input = widget.NewMultiLineEntry()
	u.input.SetPlaceHolder("One statement per line")
	u.input.Wrapping = fyne.TextWrapWord

	u.log = widget.NewEntryWithData(u.logBind)
	u.log.MultiLine = true
	u.log.Wrapping = fyne.TextWrapWord
	u.log.SetPlaceHolder("Log")
	u.log.Disable()

	u.report = widget.NewLabelWithData(u.reportBind)
	u.report.Wrapping = fyne.TextWrapWord
	u.report.TextStyle = fyne.TextStyle{Monospace: true}

	u.status = widget.NewLabelWithData(u.statusBind)
	u.progress = widget.NewProgressBarWithData(u.progressBind)
	u.progress.Hide()
	u.configSummary = widget.NewLabel("")
	u.configSummary.Wrapping = fyne.TextWrapWord

	u.analyzeBtn = widget.NewButtonWithIcon("Analyze", theme.ConfirmIcon(), func() { u.onAnalyze() })
	u.exportBtn = widget.NewButtonWithIcon("Export CSV", theme.DocumentSaveIcon(), func() { u.onExport() })
	u.loadBtn = widget.NewButtonWithIcon("Load statements", theme.FolderOpenIcon(), func() { u.onLoadFile() })
	u.corpusBtn = widget.NewButtonWithIcon("Load corpus", theme.StorageIcon(), func() { u.onLoadCorpus() })
	settingsBtn := widget.NewButtonWithIcon("Settings", theme.SettingsIcon(), func() { u.openSettings() })

	u.columns = makeColumns()
	u.resTbl = widget.NewTable(
		func() (int, int) {
			return len(u.rows) + 1, len(u.columns)
		},
		func() fyne.CanvasObject {
			lbl := widget.NewLabel("")
			lbl.Truncation = fyne.TextTruncateEllipsis
			return lbl
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			lbl := obj.(*widget.Label)
			if id.Row == 0 {
				lbl.TextStyle = fyne.TextStyle{Bold: true}
				lbl.SetText(u.columns[id.Col].Title)
				return
			}
			lbl.TextStyle = fyne.TextStyle{}
			rowIdx := id.Row - 1
			if rowIdx >= len(u.rows) {
				lbl.SetText("")
				return
			}
			lbl.SetText(u.columns[id.Col].Render(u.rows[rowIdx]))
		},
	)
	u.resTbl.OnSelected = func(id widget.TableCellID) {
		if id.Row == 0 || id.Row-1 >= len(u.rows) {
			return
		}
		u.showReport(u.rows[id.Row-1])
	}
	for i, col := range u.columns {
		u.resTbl.SetColumnWidth(i, col.Width)
	}

	controlRow1 := container.NewGridWithColumns(3, u.analyzeBtn, u.exportBtn, settingsBtn)
	controlRow2 := container.NewGridWithColumns(2, u.loadBtn, u.corpusBtn)
	left := container.NewVBox(
		widget.NewLabelWithStyle("Statements", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewMax(u.input),
		controlRow1,
		controlRow2,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Progress", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		u.progress,
		u.status,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Configuration", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		u.configSummary,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Log", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewMax(u.log),
	)

	reportScroll := container.NewVScroll(u.report)
	reportScroll.SetMinSize(fyne.NewSize(400, 240))
	right := container.NewVSplit(u.resTbl, reportScroll)
	right.Offset = 0.45
	split := container.NewHSplit(left, right)
	split.Offset = 0.35

	u.w.SetContent(split)
	u.w.Resize(fyne.NewSize(1180, 760))
	u.updateConfigSummary()
	return u
}

func makeColumns() []tableColumn {
	return []tableColumn{
		{Title: "Statement", Width: 300, Render: func(r ResultRow) string { return r.Statement }},
		{Title: "Estimate", Width: 120, Render: func(r ResultRow) string { return r.estimate() }},
		{Title: "Range", Width: 120, Render: func(r ResultRow) string {
			lo, hi := r.valueRange()
			if lo == "" {
				return ""
			}
			return lo + " - " + hi
		}},
		{Title: "Matches", Width: 280, Render: func(r ResultRow) string { return r.matchedNames() }},
		{Title: "Final stage", Width: 200, Render: func(r ResultRow) string { return r.finalStage() }},
	}
}

func (u *uiState) currentService() *calibrator.Service {
	u.svcMu.RLock()
	defer u.svcMu.RUnlock()
	return u.service
}

func (u *uiState) closeService() {
	u.svcMu.Lock()
	defer u.svcMu.Unlock()
	if u.service == nil {
		return
	}
	if err := u.service.Close(); err != nil {
		u.logger.Warn("close service", zap.Error(err))
	}
	u.service = nil
}

func (u *uiState) setBusy(b bool) {
	fyne.Do(func() {
		for _, btn := range []*widget.Button{u.analyzeBtn, u.exportBtn, u.loadBtn, u.corpusBtn} {
			if b {
				btn.Disable()
			} else {
				btn.Enable()
			}
		}
	})
}

func (u *uiState) appendLog(msg string) {
	now := time.Now().Format("15:04:05")
	_, _ = u.sink.Write([]byte(fmt.Sprintf("[%s] %s", now, msg)))
}

func (u *uiState) requestLogFlush() {
	select {
	case u.logUpdateCh <- struct{}{}:
	default:
	}
}

func (u *uiState) startLogUpdater() {
	if u.logUpdateCh != nil {
		return
	}
	u.logUpdateCh = make(chan struct{}, 1)
	go u.logUpdateLoop()
}

func (u *uiState) logUpdateLoop() {
	timer := time.NewTimer(logDebounceInterval)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-u.logUpdateCh:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(logDebounceInterval)
		case <-timer.C:
			_ = u.logBind.Set(u.sink.Text())
		}
	}
}

func (u *uiState) setStatus(text string) {
	_ = u.statusBind.Set(text)
}

func (u *uiState) updateConfigSummary() {
	svc := u.currentService()
	if svc == nil {
		return
	}
	cfg := u.cfg
	order := "keyword expansion first"
	if cfg.Pipeline.EarlyReferenceMap {
		order = "reference map early"
	}
	corpus := "built-in"
	if cfg.Corpus.Path != "" {
		corpus = filepath.Base(cfg.Corpus.Path)
	}
	summary := fmt.Sprintf("Backend: %s / Corpus: %s (%d) / Levels: %d / Order: %s / Timeout: %ds",
		svc.BackendName(), corpus, svc.Corpus().Len(), svc.ReferenceMap().Len(), order, cfg.TimeoutSeconds)
	u.configSummary.SetText(summary)
}

func (u *uiState) showReport(row ResultRow) {
	if row.Err != nil {
		_ = u.reportBind.Set(fmt.Sprintf("%s\n\nError: %v", row.Statement, row.Err))
		return
	}
	var buf bytes.Buffer
	if err := calibrator.RenderReport(&buf, row.Result, calibrator.ReportOptions{Heading: strings.ToUpper}); err != nil {
		_ = u.reportBind.Set(err.Error())
		return
	}
	_ = u.reportBind.Set(buf.String())
}

func (u *uiState) onAnalyze() {
	lines, err := calibrator.ReadStatements(strings.NewReader(u.input.Text), "", calibrator.ParseOptions{})
	if err != nil {
		dialog.ShowError(err, u.w)
		return
	}
	if len(lines) == 0 {
		dialog.ShowInformation("Info", "Enter at least one statement", u.w)
		return
	}
	svc := u.currentService()
	total := len(lines)
	fyne.Do(func() {
		u.progress.Min = 0
		u.progress.Max = float64(total)
		u.progress.Show()
	})
	_ = u.progressBind.Set(0)
	u.setStatus("Analyzing...")
	u.setBusy(true)
	u.appendLog(fmt.Sprintf("analysis started (%d statements)", total))
	start := time.Now()

	go func(statements []string) {
		rows := make([]ResultRow, 0, len(statements))
		for i, st := range statements {
			res, err := svc.Run(context.Background(), st)
			if err != nil {
				u.logger.Warn("analysis failed", zap.String("statement", st), zap.Error(err))
			}
			rows = append(rows, ResultRow{Statement: st, Result: res, Err: err})
			_ = u.progressBind.Set(float64(i + 1))
			u.setStatus(fmt.Sprintf("Analyzing %d/%d", i+1, len(statements)))
		}

		u.setBusy(false)
		elapsed := time.Since(start).Seconds()
		fyne.Do(func() {
			u.progress.Hide()
			u.rows = rows
			u.resTbl.Refresh()
			if len(rows) > 0 {
				u.showReport(rows[0])
			}
		})
		u.setStatus(fmt.Sprintf("Done: %d statements (%.1fs)", len(rows), elapsed))
		u.appendLog(fmt.Sprintf("analysis finished: %d statements (%.1fs)", len(rows), elapsed))
	}(lines)
}

func (u *uiState) onExport() {
	if len(u.rows) == 0 {
		dialog.ShowInformation("Info", "Nothing to export yet", u.w)
		return
	}
	rows := u.rows
	fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil || uc == nil {
			return
		}
		defer uc.Close()
		if err := writeResultsCSV(uc, rows); err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		u.appendLog(fmt.Sprintf("exported %d rows to %s", len(rows), uc.URI().Path()))
	}, u.w)
	fd.SetFileName("calibrations.csv")
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".csv"}))
	fd.Show()
}

func (u *uiState) openSettings() {
	cfg := u.cfg.Clone()

	earlyCheck := widget.NewCheck("Consult the reference map before keyword expansion", nil)
	earlyCheck.SetChecked(cfg.Pipeline.EarlyReferenceMap)
	confidenceEntry := widget.NewEntry()
	confidenceEntry.SetText(strconv.FormatFloat(cfg.Pipeline.SuggestionConfidence, 'f', 2, 64))
	timeoutEntry := widget.NewEntry()
	timeoutEntry.SetText(strconv.Itoa(cfg.TimeoutSeconds))
	corpusEntry := widget.NewEntry()
	corpusEntry.SetText(cfg.Corpus.Path)
	corpusEntry.SetPlaceHolder("built-in corpus")
	textColEntry := widget.NewEntry()
	textColEntry.SetText(cfg.Corpus.Columns.Text)
	textColEntry.SetPlaceHolder("detected from header")
	valueColEntry := widget.NewEntry()
	valueColEntry.SetText(cfg.Corpus.Columns.Value)
	valueColEntry.SetPlaceHolder("detected from header")
	strictCheck := widget.NewCheck("Reject duplicate ids", nil)
	strictCheck.SetChecked(cfg.Corpus.StrictIDs)
	refmapEntry := widget.NewEntry()
	refmapEntry.SetText(cfg.ReferenceMap.Path)
	refmapEntry.SetPlaceHolder("built-in levels")
	levelSel := widget.NewSelect(logLevelChoices, nil)
	levelSel.SetSelected(cfg.Log.Level)

	form := &widget.Form{Items: []*widget.FormItem{
		{Text: "Stage order", Widget: earlyCheck},
		{Text: "Suggestion confidence", Widget: confidenceEntry},
		{Text: "Model timeout (s)", Widget: timeoutEntry},
		{Text: "Corpus file", Widget: corpusEntry},
		{Text: "Text column", Widget: textColEntry, HintText: "Header name or #n"},
		{Text: "Value column", Widget: valueColEntry, HintText: "Header name or #n"},
		{Text: "Corpus ids", Widget: strictCheck},
		{Text: "Reference map file", Widget: refmapEntry},
		{Text: "Log level", Widget: levelSel},
	}}

	dialog.NewCustomConfirm("Settings", "OK", "Cancel", form, func(ok bool) {
		if !ok {
			return
		}
		newCfg := cfg.Clone()
		newCfg.Pipeline.EarlyReferenceMap = earlyCheck.Checked
		if v, err := strconv.ParseFloat(confidenceEntry.Text, 64); err == nil {
			newCfg.Pipeline.SuggestionConfidence = v
		}
		if v, err := strconv.Atoi(timeoutEntry.Text); err == nil {
			newCfg.TimeoutSeconds = v
		}
		newCfg.Corpus.Path = strings.TrimSpace(corpusEntry.Text)
		newCfg.Corpus.Columns.Text = strings.TrimSpace(textColEntry.Text)
		newCfg.Corpus.Columns.Value = strings.TrimSpace(valueColEntry.Text)
		newCfg.Corpus.StrictIDs = strictCheck.Checked
		newCfg.ReferenceMap.Path = strings.TrimSpace(refmapEntry.Text)
		if levelSel.Selected != "" {
			newCfg.Log.Level = levelSel.Selected
		}
		newCfg.ApplyDefaults()
		u.applyConfig(newCfg)
	}, u.w).Show()
}

// applyConfig persists cfg and applies it. The log level and the stage order
// change in place; anything else that affects the service reopens it.
func (u *uiState) applyConfig(cfg calibrator.Config) {
	u.applyLogLevel(cfg.Log.Level)
	if needsReopen(u.cfg, cfg) {
		u.reopen(cfg)
		return
	}
	if svc := u.currentService(); svc != nil {
		svc.SetEarlyReferenceMap(cfg.Pipeline.EarlyReferenceMap)
	}
	u.cfg = cfg
	u.saveConfig()
	u.updateConfigSummary()
	u.appendLog("settings updated")
}

// applyLogLevel switches the running logger to name when it changed.
func (u *uiState) applyLogLevel(name string) {
	if name == u.cfg.Log.Level {
		return
	}
	setLogLevel(u.level, name)
	u.logger.Info("log level changed", zap.String("level", name))
}

func needsReopen(prev, next calibrator.Config) bool {
	return !reflect.DeepEqual(prev.Corpus, next.Corpus) ||
		prev.ReferenceMap != next.ReferenceMap ||
		prev.TimeoutSeconds != next.TimeoutSeconds ||
		prev.Pipeline.SuggestionConfidence != next.Pipeline.SuggestionConfidence ||
		prev.Pipeline.AlignmentUsesLocal != next.Pipeline.AlignmentUsesLocal
}

func (u *uiState) reopen(cfg calibrator.Config) {
	u.setBusy(true)
	u.setStatus("Loading data...")
	go func() {
		defer u.setBusy(false)
		svc, err := calibrator.Open(cfg, u.logger)
		if err != nil {
			u.setStatus("Error")
			u.appendLog(fmt.Sprintf("reload failed: %v", err))
			fyne.Do(func() { dialog.ShowError(err, u.w) })
			return
		}
		u.closeService()
		u.svcMu.Lock()
		u.service = svc
		u.svcMu.Unlock()
		fyne.Do(func() {
			u.cfg = cfg
			u.saveConfig()
			u.updateConfigSummary()
		})
		u.setStatus("Ready")
		u.appendLog(fmt.Sprintf("data reloaded: %d corpus entries", svc.Corpus().Len()))
	}()
}

func (u *uiState) saveConfig() {
	if err := calibrator.SaveConfig("", u.cfg); err != nil {
		u.logger.Warn("save config", zap.Error(err))
	}
}

func (u *uiState) onLoadCorpus() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		path := rc.URI().Path()
		_ = rc.Close()
		cfg := u.cfg.Clone()
		cfg.Corpus.Path = path
		u.reopen(cfg)
	}, u.w)
	fd.SetFilter(storage.NewExtensionFileFilter(corpusFileExts))
	fd.Show()
}

func (u *uiState) onLoadFile() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		uri := rc.URI()
		table, err := calibrator.ReadStatementFile(rc, uri.Path(), statementOptions(u.cfg))
		if err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		u.chooseStatementColumn(uri, table)
	}, u.w)
	fd.SetFilter(storage.NewExtensionFileFilter(statementFileExts))
	fd.Show()
}

func (u *uiState) applyLoadedLines(uri fyne.URI, lines []string) {
	u.input.SetText(strings.Join(lines, "\n"))
	u.appendLog(fmt.Sprintf("loaded %s (%d statements)", filepath.Base(uri.Path()), len(lines)))
}

// chooseStatementColumn loads the detected statement column, asking first
// when the file has more than one column.
func (u *uiState) chooseStatementColumn(uri fyne.URI, table *calibrator.StatementTable) {
	choices := columnChoices(table)
	if len(choices) <= 1 {
		u.applyLoadedLines(uri, table.Statements())
		return
	}
	defaultChoice := 0
	options := make([]string, len(choices))
	for i, c := range choices {
		options[i] = c.Label
		if c.Index == table.TextColumn {
			defaultChoice = i
		}
	}
	selectedCol := choices[defaultChoice].Index
	selectWidget := widget.NewSelect(options, func(value string) {
		for i, opt := range options {
			if opt == value {
				selectedCol = choices[i].Index
				return
			}
		}
	})
	selectWidget.SetSelected(options[defaultChoice])
	content := container.NewVBox(widget.NewLabel("Choose the column holding the statements"), selectWidget)
	dialog.NewCustomConfirm("Select column", "Load", "Cancel", content, func(ok bool) {
		if !ok {
			return
		}
		u.applyLoadedLines(uri, table.Column(selectedCol))
	}, u.w).Show()
}
