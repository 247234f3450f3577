package components

import (
	cfg "github.com/automoto/proxyfeedback/config"
	"github.com/yohamta/donburi"
)

// FeedbackRequest asks a proxy to highlight and/or tooltip one control for a
// limited time. Callers keep the pointer: it is the handle used to retract
// the request.
type FeedbackRequest struct {
	Node             cfg.Node
	Control          cfg.Control
	Priority         int
	TooltipText      string
	SuppressExisting bool // hide lower-priority highlights/tooltips on the control
	ShowBody         bool // take the body-visibility (shake) lock
	Duration         float64
	Caller           any // compared by ==; uncomparable callers are rejected

	visible   bool
	remaining float64
	timing    bool
}

// Visible reports whether the request still counts toward visibility
func (r *FeedbackRequest) Visible() bool {
	return r.visible
}

// Remaining returns the unscaled seconds left before the request expires.
// Zero when no lifespan timer is running.
func (r *FeedbackRequest) Remaining() float64 {
	if !r.timing {
		return 0
	}
	return r.remaining
}

// DisplayDuration is the duration handed to highlights and tooltips
func (r *FeedbackRequest) DisplayDuration() float64 {
	if r.Duration > 0 {
		return r.Duration
	}
	return cfg.Feedback.DefaultDuration
}

// Lifespan is how long the request stays visible once its timer starts
func (r *FeedbackRequest) Lifespan() float64 {
	if r.ShowBody {
		return cfg.Feedback.ShakeDuration
	}
	return r.DisplayDuration() * cfg.Feedback.LifespanScale
}

// FeedbackQueueData holds the outstanding requests of one proxy in insertion
// order, plus the holder of the shake lock.
type FeedbackQueueData struct {
	Requests    []*FeedbackRequest
	ShakeHolder *FeedbackRequest
}

var FeedbackQueue = donburi.NewComponentType[FeedbackQueueData]()

// Add appends r and marks it visible. The lifespan timer starts only when
// active is true. A ShowBody request takes the shake lock only if it is free;
// otherwise it is queued for normal feedback and the lock is left alone.
func (q *FeedbackQueueData) Add(r *FeedbackRequest, active bool) {
	q.Requests = append(q.Requests, r)
	r.visible = true
	r.timing = false
	if active {
		r.remaining = r.Lifespan()
		r.timing = true
	}
	if r.ShowBody && q.ShakeHolder == nil {
		q.ShakeHolder = r
	}
}

// Remove drops r from the queue, stops its timer and releases the shake lock
// if r held it. Reports whether r was queued.
func (q *FeedbackQueueData) Remove(r *FeedbackRequest) bool {
	for i, req := range q.Requests {
		if req != r {
			continue
		}
		copy(q.Requests[i:], q.Requests[i+1:])
		q.Requests[len(q.Requests)-1] = nil
		q.Requests = q.Requests[:len(q.Requests)-1]
		r.timing = false
		if q.ShakeHolder == r {
			q.ShakeHolder = nil
		}
		return true
	}
	return false
}

// Contains reports whether r is queued
func (q *FeedbackQueueData) Contains(r *FeedbackRequest) bool {
	for _, req := range q.Requests {
		if req == r {
			return true
		}
	}
	return false
}

// Winner returns the highest-priority visible request for control. Equal
// priorities resolve to the most recently added request.
func (q *FeedbackQueueData) Winner(control cfg.Control) *FeedbackRequest {
	var winner *FeedbackRequest
	for _, req := range q.Requests {
		if req.Control != control || !req.visible {
			continue
		}
		if winner == nil || req.Priority >= winner.Priority {
			winner = req
		}
	}
	return winner
}

// AnyVisible reports whether a visible request supports control
func (q *FeedbackQueueData) AnyVisible(control cfg.Control) bool {
	for _, req := range q.Requests {
		if req.Control == control && req.visible {
			return true
		}
	}
	return false
}

// AnyVisibleAtAll reports whether any queued request is visible
func (q *FeedbackQueueData) AnyVisibleAtAll() bool {
	for _, req := range q.Requests {
		if req.visible {
			return true
		}
	}
	return false
}

// ShakeLocked reports whether a request holds the shake lock
func (q *FeedbackQueueData) ShakeLocked() bool {
	return q.ShakeHolder != nil
}

// StartTimers starts the lifespan timer of every visible request that does
// not have one yet. Used when a proxy becomes active after requests arrived.
func (q *FeedbackQueueData) StartTimers() {
	for _, req := range q.Requests {
		if req.visible && !req.timing {
			req.remaining = req.Lifespan()
			req.timing = true
		}
	}
}

// Tick advances every running lifespan timer by dt, drops the requests that
// expired from the queue and appends them to expired. An expired request
// gives up the shake lock if it held it.
func (q *FeedbackQueueData) Tick(dt float64, expired []*FeedbackRequest) []*FeedbackRequest {
	kept := q.Requests[:0]
	for _, req := range q.Requests {
		if !req.timing {
			kept = append(kept, req)
			continue
		}
		req.remaining -= dt
		if req.remaining > 0 {
			kept = append(kept, req)
			continue
		}
		req.remaining = 0
		req.timing = false
		req.visible = false
		if q.ShakeHolder == req {
			q.ShakeHolder = nil
		}
		expired = append(expired, req)
	}
	for i := len(kept); i < len(q.Requests); i++ {
		q.Requests[i] = nil
	}
	q.Requests = kept
	return expired
}

// ByCaller appends every request from caller to buf, in queue order.
// An uncomparable caller matches nothing.
func (q *FeedbackQueueData) ByCaller(caller any, buf []*FeedbackRequest) []*FeedbackRequest {
	if !Comparable(caller) {
		return buf
	}
	for _, req := range q.Requests {
		if req.Caller == caller {
			buf = append(buf, req)
		}
	}
	return buf
}
