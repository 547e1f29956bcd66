package seed

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	"github.com/Govind-Kandale-1/3Tier-website/internal/logger"
	"github.com/Govind-Kandale-1/3Tier-website/internal/utils"
)

// Creator 由 service.EmployeeService 实现，种子数据和接口走同一套校验
type Creator interface {
	Create(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error)
}

// CSVHeaders 是导入文件必须包含的列，address 可以省略
var CSVHeaders = []string{"name", "email", "phone", "department", "position", "hireDate", "salary"}

func date(s string) time.Time {
	t, _ := time.Parse(domain.DateLayout, s)
	return t
}

// StandardEmployees 返回离线客户端和演示环境使用的六名员工
func StandardEmployees() []*domain.Employee {
	employees := []*domain.Employee{
		{ID: "EMP001", Name: "John Smith", Email: "john.smith@company.com", Phone: "(555) 123-4567", Department: domain.DepartmentEngineering, Position: "Software Developer", HireDate: date("2023-01-15"), Salary: 75000, Address: "123 Main St, New York, NY 10001"},
		{ID: "EMP002", Name: "Sarah Johnson", Email: "sarah.johnson@company.com", Phone: "(555) 234-5678", Department: domain.DepartmentMarketing, Position: "Marketing Manager", HireDate: date("2022-08-10"), Salary: 68000, Address: "456 Oak Ave, Los Angeles, CA 90210"},
		{ID: "EMP003", Name: "Michael Brown", Email: "michael.brown@company.com", Phone: "(555) 345-6789", Department: domain.DepartmentHR, Position: "HR Specialist", HireDate: date("2023-03-22"), Salary: 55000, Address: "789 Pine St, Chicago, IL 60601"},
		{ID: "EMP004", Name: "Emily Davis", Email: "emily.davis@company.com", Phone: "(555) 456-7890", Department: domain.DepartmentSales, Position: "Sales Representative", HireDate: date("2022-11-05"), Salary: 62000, Address: "321 Elm Dr, Miami, FL 33101"},
		{ID: "EMP005", Name: "David Wilson", Email: "david.wilson@company.com", Phone: "(555) 567-8901", Department: domain.DepartmentFinance, Position: "Financial Analyst", HireDate: date("2023-02-18"), Salary: 70000, Address: "654 Maple Ln, Seattle, WA 98101"},
		{ID: "EMP006", Name: "Lisa Anderson", Email: "lisa.anderson@company.com", Phone: "(555) 678-9012", Department: domain.DepartmentOperations, Position: "Operations Manager", HireDate: date("2022-12-01"), Salary: 78000, Address: "987 Cedar Rd, Boston, MA 02101"},
	}

	// 没有真实的创建时间，用入职日期代替
	for _, e := range employees {
		e.CreatedAt = e.HireDate
		e.UpdatedAt = e.HireDate
	}
	return employees
}

// SeedStandard 插入六名标准员工，返回成功的数量
func SeedStandard(ctx context.Context, c Creator) int {
	inserted := 0
	for _, e := range StandardEmployees() {
		if _, err := c.Create(ctx, domain.InputFromEmployee(e)); err != nil {
			logger.FromContext(ctx).Error().Err(err).Str("email", e.Email).Msg("无法插入员工")
			continue
		}
		inserted++
	}
	return inserted
}

// SeedRandom 插入 n 名随机员工，返回成功的数量
func SeedRandom(ctx context.Context, c Creator, n int, emailDomain string) int {
	inserted := 0
	for i := 0; i < n; i++ {
		in := utils.GenerateRandomEmployee(emailDomain)
		if _, err := c.Create(ctx, in); err != nil {
			logger.FromContext(ctx).Error().Err(err).Str("email", in.Email).Msg("无法插入员工")
			continue
		}
		inserted++
	}
	return inserted
}

// SeedCSV 从带表头的 CSV 导入员工，列的顺序不限。
// 表头缺列时直接返回错误，单行失败只记录日志。
func SeedCSV(ctx context.Context, c Creator, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// 列数不对的行单独跳过，不中断整个导入
	reader.FieldsPerRecord = -1

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("读取表头失败: %w", err)
	}
	for _, required := range CSVHeaders {
		if !slices.Contains(headers, required) {
			return 0, fmt.Errorf("没有找到 %s 列", required)
		}
	}

	inserted := 0
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return inserted, fmt.Errorf("读取文件失败: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if len(row) != len(headers) {
			logger.FromContext(ctx).Error().Int("line", line).Int("fields", len(row)).Msg("列数和表头不一致")
			continue
		}

		record := make(map[string]string, len(headers))
		for i, value := range row {
			record[headers[i]] = value
		}

		in := domain.EmployeeInput{
			Name:       record["name"],
			Email:      record["email"],
			Phone:      record["phone"],
			Department: record["department"],
			Position:   record["position"],
			HireDate:   record["hireDate"],
			Salary:     json.Number(record["salary"]),
			Address:    record["address"],
		}

		if _, err := c.Create(ctx, in); err != nil {
			logger.FromContext(ctx).Error().Err(err).Int("line", line).Msg("无法插入员工")
			continue
		}
		inserted++
	}

	return inserted, nil
}
