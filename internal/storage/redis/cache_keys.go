package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	DefaultListTTL     = 1 * time.Minute
	RateLimitWindowTTL = 1 * time.Minute
)

// ListVersionKey holds a counter bumped on every committed transition in
// the company; list keys embed it so a bump orphans every cached page.
func ListVersionKey(companyID string) string {
	return fmt.Sprintf("applicants:company:%s:version", companyID)
}

func ListKey(companyID string, version int64, fingerprint string) string {
	return fmt.Sprintf("applicants:company:%s:v%d:%s", companyID, version, fingerprint)
}

func RateLimitKey(actorID string) string {
	return fmt.Sprintf("ratelimit:actor:%s", actorID)
}

// LoadList reads the company's current version and the page cached under
// it. The version is returned on a miss too; pass it to StoreList.
func (c *Cache) LoadList(ctx context.Context, companyID, fingerprint string, dest any) (int64, bool, error) {
	version, err := c.GetInt(ctx, ListVersionKey(companyID))
	if err != nil {
		return 0, false, err
	}

	err = c.Get(ctx, ListKey(companyID, version, fingerprint), dest)
	if errors.Is(err, ErrCacheMiss) {
		return version, false, nil
	}
	if err != nil {
		return version, false, err
	}

	return version, true, nil
}

// StoreList writes a page under the version it was computed against. A
// page computed before an Invalidate lands under an orphaned key.
func (c *Cache) StoreList(ctx context.Context, companyID string, version int64, fingerprint string, value any) error {
	return c.Set(ctx, ListKey(companyID, version, fingerprint), value, c.listTTL)
}

// Invalidate orphans every cached listing of the company.
func (c *Cache) Invalidate(ctx context.Context, companyID string) error {
	_, err := c.Increment(ctx, ListVersionKey(companyID))
	return err
}

func (c *Cache) IncrementActorRateLimit(ctx context.Context, actorID string) (int64, error) {
	return c.IncrementWithExpiry(ctx, RateLimitKey(actorID), RateLimitWindowTTL)
}
