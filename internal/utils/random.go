package utils

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	"github.com/mozillazg/go-pinyin"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

var positionsByDepartment = map[domain.Department][]string{
	domain.DepartmentHR:          {"HR Specialist", "Recruiter", "HR Manager"},
	domain.DepartmentEngineering: {"Software Developer", "QA Engineer", "DevOps Engineer", "Engineering Manager"},
	domain.DepartmentMarketing:   {"Marketing Manager", "Content Strategist", "SEO Specialist"},
	domain.DepartmentSales:       {"Sales Representative", "Account Executive", "Sales Manager"},
	domain.DepartmentFinance:     {"Financial Analyst", "Accountant", "Controller"},
	domain.DepartmentOperations:  {"Operations Manager", "Logistics Coordinator", "Office Administrator"},
}

var streets = []string{"Main St", "Oak Ave", "Pine St", "Elm Dr", "Maple Ln", "Cedar Rd"}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

// GenerateEmailLocalPartFromChineseName 取每个字拼音的前缀再拼上几位数字
func GenerateEmailLocalPartFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	localPart := ""

	for _, py := range pinyinArray {
		length := rand.Intn(len(py)) + 1
		localPart += py[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		localPart += string(digits[rand.Intn(len(digits))])
	}

	return localPart
}

func GenerateRandomDepartment() domain.Department {
	return domain.Departments[rand.Intn(len(domain.Departments))]
}

// GenerateRandomPhone 随机生成三种合法格式之一
func GenerateRandomPhone() string {
	area, prefix, line := 200+rand.Intn(800), 100+rand.Intn(900), rand.Intn(10000)
	switch rand.Intn(3) {
	case 0:
		return fmt.Sprintf("(%03d) %03d-%04d", area, prefix, line)
	case 1:
		return fmt.Sprintf("%03d-%03d-%04d", area, prefix, line)
	default:
		return fmt.Sprintf("%03d%03d%04d", area, prefix, line)
	}
}

func GenerateRandomEmployee(emailDomain string) domain.EmployeeInput {
	fullName := GenerateRandomChineseName()
	department := GenerateRandomDepartment()
	positions := positionsByDepartment[department]

	// 入职时间在过去五年内
	hireDate := time.Now().AddDate(0, 0, -rand.Intn(5*365))
	salary := 40000 + rand.Intn(81)*1000

	return domain.EmployeeInput{
		Name:       fullName,
		Email:      GenerateEmailLocalPartFromChineseName(fullName) + "@" + emailDomain,
		Phone:      GenerateRandomPhone(),
		Department: string(department),
		Position:   positions[rand.Intn(len(positions))],
		HireDate:   hireDate.Format(domain.DateLayout),
		Salary:     json.Number(strconv.Itoa(salary)),
		Address:    fmt.Sprintf("%d %s", 100+rand.Intn(900), streets[rand.Intn(len(streets))]),
	}
}
