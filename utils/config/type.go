package config

// Grid 路网配置
// 功能：定义m×n网格路网的形状与入口
type Grid struct {
	M             int32   `yaml:"m"`                         // 行数
	N             int32   `yaml:"n"`                         // 列数
	RoadLength    float64 `yaml:"road_length"`               // 所有道路统一长度
	EntrySideMask uint8   `yaml:"entry_side_mask,omitempty"` // 入口屏蔽位（bit0西 bit1东 bit2南 bit3北，置位表示关闭该侧入口）
}

// ControlStep 指定模拟器模拟时间范围和间隔的配置项
// 功能：定义仿真时间控制参数
// 说明：Interval即每个tick对应的时长（秒）
type ControlStep struct {
	Start    int32   `yaml:"start"`    // 开始步数
	Total    int32   `yaml:"total"`    // 单个episode的总步数
	Interval float64 `yaml:"interval"` // 每步的时间间隔
}

// Control 模拟器控制配置
type Control struct {
	Step          ControlStep `yaml:"step"`
	CarsPerSecond float64     `yaml:"cars_per_second"`     // 全路网每秒到达车辆数
	Capacity      int32       `yaml:"capacity,omitempty"`  // 每条道路环形缓冲区槽位数，为0则取默认值
	Seed          uint64      `yaml:"seed,omitempty"`      // 随机种子，第k个episode使用seed+k
	Heartbeat     int32       `yaml:"heartbeat,omitempty"` // 心跳日志间隔步数，为0则不输出
}

// Archetype 车辆参数原型
// 功能：定义新生成车辆的跟车模型参数
type Archetype struct {
	Name     string  `yaml:"name"`
	V        float64 `yaml:"v"`        // 初始速度
	Length   float64 `yaml:"length"`   // 车长
	MaxA     float64 `yaml:"max_a"`    // 最大加速度
	Delta    float64 `yaml:"delta"`    // 加速度指数
	V0       float64 `yaml:"v0"`       // 期望速度
	ComfortB float64 `yaml:"comfort_b"` // 舒适减速度
	Headway  float64 `yaml:"headway"`  // 安全车头时距
	MinGap   float64 `yaml:"min_gap"`  // 最小车距
}

// Server 环境服务配置
type Server struct {
	Listen         string  `yaml:"listen,omitempty"`          // 监听地址
	StreamInterval float64 `yaml:"stream_interval,omitempty"` // 快照推送间隔（秒），为0则取tick时长
}

// Config YAML配置文件的根结构
// 功能：定义整个仿真系统的配置结构
type Config struct {
	Grid       Grid        `yaml:"grid"`                 // 路网
	Control    Control     `yaml:"control"`              // 模拟过程控制
	Archetypes []Archetype `yaml:"archetypes,omitempty"` // 车辆原型，为空则使用默认原型
	Server     Server      `yaml:"server,omitempty"`     // 环境服务
}
