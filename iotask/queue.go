/*
Copyright (C) 2026  OpenPMD-Go Contributors

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package iotask

// Queue is the FIFO of pending Tasks a handler drains on flush (spec §4.2,
// §9). Like the original's task queue, Queue is not safe for concurrent
// use; the frontend is expected to serialize access to a given Series
// itself (spec §5 "MPI ranks never share a handler").
type Queue[P any] struct {
	tasks []*Task[P]
}

// Push appends t to the tail of the queue.
func (q *Queue[P]) Push(t *Task[P]) {
	q.tasks = append(q.tasks, t)
}

// Len reports the number of pending tasks.
func (q *Queue[P]) Len() int { return len(q.tasks) }

// Drain removes and returns every pending task in submission order,
// leaving the queue empty. handler.Flush calls this once per flush and
// then executes the returned slice in order.
func (q *Queue[P]) Drain() []*Task[P] {
	out := q.tasks
	q.tasks = nil
	return out
}

// Peek returns the pending tasks without removing them, for callers that
// need to inspect the queue (e.g. to compute the dirty-file set) before
// committing to a drain.
func (q *Queue[P]) Peek() []*Task[P] {
	return q.tasks
}
