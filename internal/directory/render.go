package directory

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const displayDateLayout = "Jan 2, 2006"

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatDate 输出 "Jan 15, 2023" 格式
func FormatDate(t time.Time) string {
	return t.Format(displayDateLayout)
}

// FormatSalary 输出 "$75,000" 格式，最多保留两位小数
func FormatSalary(salary float64) string {
	return "$" + printer.Sprint(number.Decimal(salary, number.MaxFractionDigits(2)))
}

// CountLabel 输出 "1 employee" 或 "N employees"
func CountLabel(n int) string {
	if n == 1 {
		return "1 employee"
	}
	return fmt.Sprintf("%d employees", n)
}

// RenderTable 把投影后的列表渲染为对齐的文本表格
func RenderTable(w io.Writer, employees []*domain.Employee) error {
	if _, err := fmt.Fprintln(w, CountLabel(len(employees))); err != nil {
		return err
	}
	if len(employees) == 0 {
		_, err := fmt.Fprintln(w, "No employees found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tEmail\tDepartment\tPosition\tHire Date\tSalary")
	for _, e := range employees {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Name, e.Email, e.Department, e.Position, FormatDate(e.HireDate), FormatSalary(e.Salary))
	}
	return tw.Flush()
}

func RenderDashboard(w io.Writer, d Dashboard) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Total Employees\t%d\n", d.Total)
	fmt.Fprintf(tw, "Departments\t%d\n", d.Departments)
	fmt.Fprintf(tw, "Recent Hires (30 days)\t%d\n", d.RecentHires)

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Department Distribution")
	for _, dc := range d.ByDepartment {
		fmt.Fprintf(tw, "  %s\t%d\n", dc.Department, dc.Count)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Recent Employees")
	if len(d.Recent) == 0 {
		fmt.Fprintln(tw, "  No employees found")
	}
	for _, e := range d.Recent {
		fmt.Fprintf(tw, "  %s\t%s - %s\t%s\n", e.Name, e.Position, e.Department, FormatDate(e.HireDate))
	}

	return tw.Flush()
}
