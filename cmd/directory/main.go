package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Govind-Kandale-1/3Tier-website/internal/client"
	"github.com/Govind-Kandale-1/3Tier-website/internal/config"
	"github.com/Govind-Kandale-1/3Tier-website/internal/directory"
	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	"github.com/Govind-Kandale-1/3Tier-website/internal/logger"
	"github.com/Govind-Kandale-1/3Tier-website/internal/utils"
	"github.com/gookit/color"
)

const usage = `用法: directory [-standalone] <命令> [参数]

  -standalone  使用内置的六名员工离线运行，修改只在本次运行中有效，不会保存

命令:
  list       列出员工 (-search, -department, -sort)
  dashboard  查看统计信息
  add        新增员工
  edit       编辑员工 (-id)
  delete     删除员工 (-id, -y 跳过确认)
  export     导出当前列表为 xlsx (-o)
`

const standaloneNote = " (standalone mode: not saved after this run)"

// standalone 为 true 时写操作只作用于本次运行的内存数据
var standalone bool

func toastText(msg string, standalone bool) string {
	if standalone {
		return msg + standaloneNote
	}
	return msg
}

// 表单字段的 flag，名称和 json 字段一致
var formFields = []string{"name", "email", "phone", "department", "position", "hireDate", "salary", "address"}

func main() {
	flag.BoolVar(&standalone, "standalone", false, "使用内置的六名员工离线运行，不连接服务端，修改不会保存")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	/**********************************************
	 * 加载配置
	 **********************************************/
	cfg, err := config.LoadClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法加载配置: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.Log.Level, cfg.Log.FilePath)
	ctx := log.WithContext(context.Background())

	/**********************************************
	 * 初始化数据
	 **********************************************/
	var backend directory.Backend
	if standalone {
		backend = directory.NewMemoryBackend()
	} else {
		backend = client.New(cfg.APIURL, client.WithTimeout(time.Duration(cfg.Timeout)*time.Second))
	}

	validator, err := utils.NewEmployeeValidator()
	if err != nil {
		log.Error().Err(err).Msg("无法创建校验器")
		os.Exit(1)
	}

	store := directory.NewStore(backend, validator)
	if err := store.Load(ctx); err != nil {
		log.Debug().Err(err).Msg("加载员工列表失败")
		color.Error.Println("Failed to load employees: " + err.Error())
		os.Exit(1)
	}

	/**********************************************
	 * 执行命令
	 **********************************************/
	cmd, args := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "list":
		err = runList(store, args)
	case "dashboard":
		err = directory.RenderDashboard(os.Stdout, directory.BuildDashboard(store.Employees(), time.Now()))
	case "add":
		err = runForm(ctx, store, false, args)
	case "edit":
		err = runForm(ctx, store, true, args)
	case "delete":
		err = runDelete(ctx, store, args, os.Stdin)
	case "export":
		err = runExport(store, args)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			log.Debug().Err(err).Str("command", cmd).Msg("命令执行失败")
			color.Error.Println(err.Error())
		}
		os.Exit(1)
	}
}

// sortFlag 每出现一次相当于点击一次表头
type sortFlag struct {
	state directory.SortState
}

func (s *sortFlag) String() string {
	if s.state.Column == "" {
		return ""
	}
	return string(s.state.Column) + " " + string(s.state.Direction)
}

func (s *sortFlag) Set(v string) error {
	column := directory.SortColumn(v)
	if !column.Valid() {
		return fmt.Errorf("无法按 %s 排序", v)
	}
	s.state.Toggle(column)
	return nil
}

func queryFlags(fs *flag.FlagSet) (*directory.Query, *sortFlag) {
	q := &directory.Query{}
	sort := &sortFlag{}
	fs.StringVar(&q.Search, "search", "", "按姓名或部门搜索")
	fs.StringVar(&q.Department, "department", "", "只显示该部门的员工")
	fs.Var(sort, "sort", "排序的列，重复指定同一列时切换升降序")
	return q, sort
}

func runList(store *directory.Store, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	q, sort := queryFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	q.Sort = sort.state

	return directory.RenderTable(os.Stdout, directory.Project(store.Employees(), *q))
}

func runExport(store *directory.Store, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	q, sort := queryFlags(fs)
	output := fs.String("o", "employees.xlsx", "输出文件路径")
	if err := fs.Parse(args); err != nil {
		return err
	}
	q.Sort = sort.state

	employees := directory.Project(store.Employees(), *q)

	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := directory.ExportXLSX(f, employees); err != nil {
		return err
	}
	color.Success.Printf("Exported %s to %s\n", directory.CountLabel(len(employees)), *output)
	return nil
}

// runForm 把 flag 填入表单并提交，edit 为 true 时按 -id 编辑已有员工
func runForm(ctx context.Context, store *directory.Store, edit bool, args []string) error {
	fs := flag.NewFlagSet("form", flag.ContinueOnError)
	id := fs.String("id", "", "要编辑的员工 ID")
	values := make(map[string]*string, len(formFields))
	for _, field := range formFields {
		values[field] = fs.String(field, "", field)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := directory.NewForm(store)
	if edit {
		if *id == "" {
			return errors.New("请通过 -id 指定员工")
		}
		if err := form.OpenEdit(*id); err != nil {
			return err
		}
	} else if err := form.OpenCreate(); err != nil {
		return err
	}

	// 编辑时只覆盖显式指定的字段
	var setErr error
	fs.Visit(func(f *flag.Flag) {
		if setErr == nil && f.Name != "id" {
			setErr = form.Set(f.Name, *values[f.Name])
		}
	})
	if setErr != nil {
		return setErr
	}

	title := form.Title()
	if _, err := form.Submit(ctx); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			color.Error.Println(title + " failed:")
			for _, fe := range verr.Errors {
				color.Red.Printf("  %s: %s\n", fe.Field, fe.Message)
			}
			return err
		}
		color.Error.Println("Error saving employee. Please try again.")
		return err
	}

	if edit {
		color.Success.Println(toastText("Employee updated successfully!", standalone))
	} else {
		color.Success.Println(toastText("Employee added successfully!", standalone))
	}
	return nil
}

func runDelete(ctx context.Context, store *directory.Store, args []string, in io.Reader) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	id := fs.String("id", "", "员工 ID")
	yes := fs.Bool("y", false, "跳过确认")
	if err := fs.Parse(args); err != nil {
		return err
	}

	confirm := directory.NewDeleteConfirmation(store)
	if err := confirm.Request(*id); err != nil {
		return err
	}

	if !*yes {
		_, name, _ := confirm.Pending()
		color.Warn.Printf("Are you sure you want to delete %s? This action cannot be undone. [y/N] ", name)

		answer, _ := bufio.NewReader(in).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			confirm.Cancel()
			color.Info.Println("Cancelled")
			return nil
		}
	}

	if err := confirm.Confirm(ctx); err != nil {
		return err
	}
	color.Success.Println(toastText("Employee deleted successfully!", standalone))
	return nil
}
