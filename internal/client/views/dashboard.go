package views

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/teacherlms/internal/client/client"
	"github.com/dmitrijs2005/teacherlms/internal/client/models"
	"github.com/dmitrijs2005/teacherlms/internal/client/services"
	"github.com/dmitrijs2005/teacherlms/internal/common"
	"github.com/dmitrijs2005/teacherlms/internal/logging"
)

const recentLimit = 5

// Summary is everything the dashboard shows.
type Summary struct {
	UserLabel string
	Stats     models.Stats
	Recent    []models.Content

	// FailedCategories lists categories whose content could not be fetched;
	// their items are missing from Stats and Recent.
	FailedCategories []models.Category

	// Partial is set when Stats does not cover every category.
	Partial bool
}

type Dashboard struct {
	categories services.CategoryService
	content    services.ContentService
	auth       services.AuthService
	log        logging.Logger
}

func NewDashboard(categories services.CategoryService, content services.ContentService, auth services.AuthService, log logging.Logger) *Dashboard {
	return &Dashboard{categories: categories, content: content, auth: auth, log: log}
}

// Load fetches the category list and then the content of each category, one
// request at a time. A category whose content fails is skipped and reported
// in FailedCategories. ErrUnauthorized and context errors abort the load.
func (d *Dashboard) Load(ctx context.Context) (Summary, error) {
	var sum Summary

	sess, err := d.auth.Session(ctx)
	if err != nil {
		d.log.Warn(ctx, "reading session failed", "error", err)
	}
	sum.UserLabel = UserLabel(sess.UserEmail)

	cats, err := d.categories.List(ctx)
	if err != nil {
		if fatal(err) {
			return sum, err
		}
		d.log.Error(ctx, "fetching dashboard data failed", "error", err)
		sum.Partial = true
		return sum, nil
	}

	var all []models.Content
	for _, c := range cats {
		items, err := d.content.List(ctx, c.ID)
		if err != nil {
			if fatal(err) {
				return sum, err
			}
			d.log.Error(ctx, "fetching category content failed", "category", c.ID, "error", err)
			sum.FailedCategories = append(sum.FailedCategories, c)
			sum.Partial = true
			continue
		}
		all = append(all, items...)
	}

	sum.Stats = Aggregate(len(cats), all)
	sum.Recent = Recent(all, recentLimit)
	return sum, nil
}

func fatal(err error) bool {
	return errors.Is(err, client.ErrUnauthorized) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// Aggregate counts items per type.
func Aggregate(sections int, items []models.Content) models.Stats {
	s := models.Stats{TotalSections: sections}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Recent returns up to n items, newest first. Items with equal timestamps
// keep their relative order.
func Recent(items []models.Content, n int) []models.Content {
	sorted := append([]models.Content(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// TimeAgo labels created relative to now by calendar day in now's location:
// "Today", "Yesterday", "N days ago" up to six days, then the date.
func TimeAgo(created, now time.Time) string {
	loc := now.Location()
	c := created.In(loc)

	cy, cm, cd := c.Date()
	ny, nm, nd := now.Date()
	cDay := time.Date(cy, cm, cd, 0, 0, 0, 0, time.UTC)
	nDay := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)

	days := int(nDay.Sub(cDay).Hours() / 24)
	if days < 0 {
		days = -days
	}

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	}
	return c.Format("Jan 2, 2006")
}

// UserLabel is the stored email or a generic label.
func UserLabel(email string) string {
	if email == "" {
		return common.DefaultUserLabel
	}
	return email
}
