package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/teacherlms/internal/client/models"
	"github.com/dmitrijs2005/teacherlms/internal/client/views"
)

const dateLayout = "Jan 2, 2006"

func renderHome(w io.Writer) {
	fmt.Fprintln(w, "Teacher LMS")
	fmt.Fprintln(w, "Organize Your Learning Content with Ease")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A simple, powerful platform to upload, organize, and manage all your")
	fmt.Fprintln(w, "educational materials. Images, documents, presentations, and videos.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Get started: type 'login'")
}

func renderLogin(w io.Writer) {
	fmt.Fprintln(w, "Sign in to Teacher LMS")
	fmt.Fprintln(w, "Type 'login' to enter your email and password.")
}

// renderSidebar lists the sections; current marks the one being viewed.
func renderSidebar(w io.Writer, cats []models.Category, current string) {
	fmt.Fprintln(w, "Sections")
	if len(cats) == 0 {
		fmt.Fprintln(w, "  (none yet, create one with 'mkcat <name>')")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range cats {
		marker := " "
		if c.ID == current {
			marker = "*"
		}
		fmt.Fprintf(tw, " %s %s\t%s\n", marker, c.Name, c.ID)
	}
	_ = tw.Flush()
}

func renderDashboard(w io.Writer, sum views.Summary, now time.Time) {
	fmt.Fprintln(w, "Dashboard")
	fmt.Fprintf(w, "Welcome back, %s! Here's an overview of your learning content.\n\n", sum.UserLabel)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  Total Sections\t%d\n", sum.Stats.TotalSections)
	fmt.Fprintf(tw, "  Total Files\t%d\n", sum.Stats.TotalFiles)
	fmt.Fprintf(tw, "  Images\t%d\n", sum.Stats.Images)
	fmt.Fprintf(tw, "  Videos\t%d\n", sum.Stats.Videos)
	_ = tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recent Uploads")
	if len(sum.Recent) == 0 {
		fmt.Fprintln(w, "  No files uploaded yet")
		fmt.Fprintln(w, "  Create a section and start uploading!")
	} else {
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, it := range sum.Recent {
			fmt.Fprintf(tw, "  %s %s\t%s\t%s\n", it.Type.Glyph(), it.Title, views.TimeAgo(it.CreatedAt, now), strings.ToUpper(string(it.Type)))
		}
		_ = tw.Flush()
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Content Breakdown")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  Images\t%d\n", sum.Stats.Images)
	fmt.Fprintf(tw, "  Documents\t%d\n", sum.Stats.Documents)
	fmt.Fprintf(tw, "  Presentations\t%d\n", sum.Stats.Presentations)
	fmt.Fprintf(tw, "  PDFs\t%d\n", sum.Stats.PDFs)
	fmt.Fprintf(tw, "  Videos\t%d\n", sum.Stats.Videos)
	_ = tw.Flush()

	if sum.Partial {
		fmt.Fprintln(w)
		if len(sum.FailedCategories) == 0 {
			fmt.Fprintln(w, "Sections could not be loaded; the figures above are incomplete.")
		} else {
			names := make([]string, 0, len(sum.FailedCategories))
			for _, c := range sum.FailedCategories {
				names = append(names, c.Name)
			}
			fmt.Fprintf(w, "Not counted (failed to load): %s\n", strings.Join(names, ", "))
		}
	}
}

// filterTabs renders "[All (3)] | Images (1) | ..." with the active tab in
// brackets.
func filterTabs(v *views.CategoryView) string {
	filters := append([]models.Filter{models.FilterAll}, typeFilters()...)
	tabs := make([]string, 0, len(filters))
	for _, f := range filters {
		label := "All"
		if f != models.FilterAll {
			label = models.ContentType(f).Label()
		}
		tab := fmt.Sprintf("%s (%d)", label, v.Count(f))
		if f == v.Filter() {
			tab = "[" + tab + "]"
		}
		tabs = append(tabs, tab)
	}
	return strings.Join(tabs, " | ")
}

func typeFilters() []models.Filter {
	out := make([]models.Filter, 0, len(models.ContentTypes))
	for _, t := range models.ContentTypes {
		out = append(out, models.Filter(t))
	}
	return out
}

func renderCategory(w io.Writer, v *views.CategoryView) {
	if v == nil {
		return
	}

	name := v.Category().Name
	if name == "" {
		name = v.ID()
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s (%s)\n", name, v.ID())
	if v.Phase() == views.Unavailable {
		fmt.Fprintln(w, "  Could not load this section. Type 'reload' to try again.")
		return
	}
	fmt.Fprintln(w, filterTabs(v))

	if v.Selecting() {
		fmt.Fprintf(w, "Selection mode: %s selected\n", plural(v.SelectedCount(), "item"))
	}

	items := v.Visible()
	if len(items) == 0 {
		fmt.Fprintln(w, "  No files yet")
		fmt.Fprintln(w, "  Upload some content to get started")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, it := range items {
		check := ""
		if v.Selecting() {
			check = "[ ] "
			if v.IsSelected(it.ID) {
				check = "[x] "
			}
		}
		fmt.Fprintf(tw, "  %s%s\t%s %s\t%s\t%s\n", check, it.ID, it.Type.Glyph(), it.Title, it.Description, formatDate(it.CreatedAt))
	}
	_ = tw.Flush()
}

func renderBatch(w io.Writer, verb string, res views.BatchResult) {
	fmt.Fprintf(w, "%s %d of %d\n", verb, res.Succeeded(), len(res.Items))
	for _, it := range res.Items {
		switch {
		case it.Err != nil:
			fmt.Fprintf(w, "  failed: %s: %v\n", it.Title, it.Err)
		case it.Path != "":
			fmt.Fprintf(w, "  %s -> %s\n", it.Title, it.Path)
		}
	}
}

func renderStatus(w io.Writer, sess models.Session, expiry time.Time, known bool, location string) {
	if !sess.Authenticated() {
		fmt.Fprintln(w, "Not signed in")
	} else {
		exp := "unknown"
		if known {
			exp = expiry.Local().Format(time.RFC1123)
		}
		fmt.Fprintf(w, "Signed in as %s (token expires: %s)\n", views.UserLabel(sess.UserEmail), exp)
	}
	fmt.Fprintf(w, "Location: %s\n", location)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateLayout)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
