package conf

type Bootstrap struct {
	Server *Server `json:"server"`
	Report *Report `json:"report"`
}

type Server struct {
	Http *HTTP `json:"http"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

// Report 报告引擎配置，字段与 finance_report 的 config.yaml 一致
type Report struct {
	Llm         *LLM         `json:"llm"`
	Output      *Output      `json:"report"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
	SecretsFile string       `json:"secrets_file"`
}

type LLM struct {
	Provider       string `json:"provider"`
	BaseUrl        string `json:"base_url"`
	ApiKey         string `json:"api_key"`
	Model          string `json:"model"`
	TimeoutSeconds int32  `json:"timeout_seconds"`
}

type Output struct {
	Title               string  `json:"title"`
	SectionMaxTokens    int32   `json:"section_max_tokens"`
	ConclusionMaxTokens int32   `json:"conclusion_max_tokens"`
	Temperature         float32 `json:"temperature"`
	ExcerptLength       int32   `json:"excerpt_length"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}
