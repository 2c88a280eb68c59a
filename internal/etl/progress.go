package etl

import "sync/atomic"

// Progress tracks the running batch for status queries.
type Progress struct {
	processed atomic.Int64
	total     atomic.Int64
	running   atomic.Bool
}

type ProgressStatus struct {
	Processed  int64   `json:"processed"`
	Total      int64   `json:"total"`
	Percentage float64 `json:"percentage"`
	Running    bool    `json:"running"`
}

func (p *Progress) start(total int) {
	p.processed.Store(0)
	p.total.Store(int64(total))
	p.running.Store(true)
}

func (p *Progress) advance() { p.processed.Add(1) }

func (p *Progress) finish() { p.running.Store(false) }

func (p *Progress) Snapshot() ProgressStatus {
	st := ProgressStatus{
		Processed: p.processed.Load(),
		Total:     p.total.Load(),
		Running:   p.running.Load(),
	}
	if st.Total > 0 {
		st.Percentage = float64(st.Processed) * 100.0 / float64(st.Total)
	}
	return st
}
