// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package globcache implements the Global Cache (C4): a process-wide,
in-memory snapshot of the domain store's working set — users, courses
with chapters, the instructional calendar, and named dates — behind a
single [sync.RWMutex]. Refreshers take the writer side; every other
accessor takes the reader side.

Cross-replica invalidation rides on Redis pub/sub: a refresh on one
replica publishes to [constants.RedisChannelCacheInvalidate] so sibling
replicas know to reload from the domain store.
*/
package globcache

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/pacer/internal/pacer"
	"github.com/taibuivan/pacer/internal/platform/apperr"
	"github.com/taibuivan/pacer/internal/platform/constants"
)

// Loader fetches a fresh snapshot from the domain store.
type Loader interface {
	LoadUsers(ctx context.Context) (map[string]pacer.User, error)
	LoadCourses(ctx context.Context) (map[int64]*pacer.Course, error)
	LoadCalendar(ctx context.Context) (pacer.Calendar, error)
	LoadDates(ctx context.Context) (pacer.NamedDates, error)
}

// Cache is the process-wide snapshot. All fields below mu are guarded by it.
type Cache struct {
	mu sync.RWMutex

	users      map[string]pacer.User
	courses    map[int64]*pacer.Course
	courseSyms map[string]int64
	calendar   pacer.Calendar
	dates      pacer.NamedDates

	loader Loader
	redis  *redis.Client
	logger *slog.Logger
}

// New constructs an empty Cache. Call [Cache.RefreshAll] before serving
// traffic.
func New(loader Loader, redisClient *redis.Client, logger *slog.Logger) *Cache {
	return &Cache{
		loader: loader,
		redis:  redisClient,
		logger: logger,
	}
}

// # Refreshers (writer side)

// RefreshAll reloads the entire snapshot from the domain store and
// publishes an invalidation notice to sibling replicas.
func (c *Cache) RefreshAll(ctx context.Context) error {
	if err := c.reloadAll(ctx); err != nil {
		return err
	}
	c.publishInvalidation(ctx)
	return nil
}

// reloadAll reloads the entire snapshot from the domain store without
// publishing an invalidation notice.
func (c *Cache) reloadAll(ctx context.Context) error {
	users, err := c.loader.LoadUsers(ctx)
	if err != nil {
		return err
	}
	courses, err := c.loader.LoadCourses(ctx)
	if err != nil {
		return err
	}
	calendar, err := c.loader.LoadCalendar(ctx)
	if err != nil {
		return err
	}
	dates, err := c.loader.LoadDates(ctx)
	if err != nil {
		return err
	}

	sort.Slice(calendar, func(i, j int) bool { return calendar[i].Before(calendar[j]) })

	courseSyms := make(map[string]int64, len(courses))
	for id, course := range courses {
		courseSyms[course.Sym] = id
	}

	c.mu.Lock()
	c.users = users
	c.courses = courses
	c.courseSyms = courseSyms
	c.calendar = calendar
	c.dates = dates
	c.mu.Unlock()

	return nil
}

// RefreshUsers reloads only the users map, e.g. after the Dual-Store
// Coordinator commits an insert/update/delete of a user.
func (c *Cache) RefreshUsers(ctx context.Context) error {
	users, err := c.loader.LoadUsers(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.users = users
	c.mu.Unlock()

	c.publishInvalidation(ctx)
	return nil
}

// RefreshCourses reloads courses and rebuilds the sym index.
func (c *Cache) RefreshCourses(ctx context.Context) error {
	courses, err := c.loader.LoadCourses(ctx)
	if err != nil {
		return err
	}

	courseSyms := make(map[string]int64, len(courses))
	for id, course := range courses {
		courseSyms[course.Sym] = id
	}

	c.mu.Lock()
	c.courses = courses
	c.courseSyms = courseSyms
	c.mu.Unlock()

	c.publishInvalidation(ctx)
	return nil
}

// RefreshCalendar reloads the instructional calendar.
func (c *Cache) RefreshCalendar(ctx context.Context) error {
	calendar, err := c.loader.LoadCalendar(ctx)
	if err != nil {
		return err
	}
	sort.Slice(calendar, func(i, j int) bool { return calendar[i].Before(calendar[j]) })

	c.mu.Lock()
	c.calendar = calendar
	c.mu.Unlock()

	c.publishInvalidation(ctx)
	return nil
}

// RefreshDates reloads the named-dates map.
func (c *Cache) RefreshDates(ctx context.Context) error {
	dates, err := c.loader.LoadDates(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.dates = dates
	c.mu.Unlock()

	c.publishInvalidation(ctx)
	return nil
}

func (c *Cache) publishInvalidation(ctx context.Context) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Publish(ctx, constants.RedisChannelCacheInvalidate, "refresh").Err(); err != nil {
		c.logger.Warn("cache_invalidation_publish_failed", slog.Any("error", err))
	}
}

// Subscribe listens for invalidation notices (this replica's own included)
// and reloads the whole snapshot on each one without publishing a notice
// of its own. It blocks until ctx is cancelled; run it in its own goroutine.
func (c *Cache) Subscribe(ctx context.Context) {
	if c.redis == nil {
		return
	}

	pubsub := c.redis.Subscribe(ctx, constants.RedisChannelCacheInvalidate)
	defer pubsub.Close()

	channel := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case <-channel:
			if err := c.reloadAll(ctx); err != nil {
				c.logger.Error("cache_refresh_on_invalidation_failed", slog.Any("error", err))
			}
		}
	}
}

// # Accessors (reader side)

// CourseBySym returns the course registered under sym, or false if none
// matches.
func (c *Cache) CourseBySym(sym string) (*pacer.Course, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.courseSyms[sym]
	if !ok {
		return nil, false
	}
	course, ok := c.courses[id]
	return course, ok
}

// User returns the user registered under uname, or false if none matches.
func (c *Cache) User(uname string) (pacer.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	user, ok := c.users[uname]
	return user, ok
}

// GetStudentsByTeacher returns every student User whose TeacherUname
// matches tuname.
func (c *Cache) GetStudentsByTeacher(tuname string) []pacer.User {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var students []pacer.User
	for _, user := range c.users {
		if user.Student != nil && user.Student.TeacherUname == tuname {
			students = append(students, user)
		}
	}
	return students
}

// Calendar returns the full, ascending-sorted instructional calendar.
func (c *Cache) Calendar() pacer.Calendar {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(pacer.Calendar, len(c.calendar))
	copy(out, c.calendar)
	return out
}

// NamedDate returns the date registered under name.
func (c *Cache) NamedDate(name string) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	date, ok := c.dates[name]
	return date, ok
}

// EndFall is a convenience accessor for the end-fall named date, used to
// split goals into fall/spring semesters.
func (c *Cache) EndFall() (time.Time, error) {
	date, ok := c.NamedDate(pacer.NamedDateEndFall)
	if !ok {
		return time.Time{}, apperr.NotFound("end-fall date")
	}
	return date, nil
}

// AllCourses returns every course currently cached.
func (c *Cache) AllCourses() []*pacer.Course {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*pacer.Course, 0, len(c.courses))
	for _, course := range c.courses {
		out = append(out, course)
	}
	return out
}
