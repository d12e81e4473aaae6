package generate

// Extension catalogs ordered by how often each category turns up real
// leftovers. Order matters: sweeps emit these lists as given.

// CriticalBackupExtensions are the most likely to expose sensitive
// leftovers.
var CriticalBackupExtensions = []string{
	"bak", "backup", "old", "orig", "save", "copy", "tmp", "temp", "~",
	"sql", "dump", "db", "sqlite", "sqlite3", "mdb", "accdb", "asp", "aspx",
	"zip", "rar", "tar", "tar.gz", "7z", "tgz", "gz", "bz2", "php", "jsp", "py",
	"env", "config", "cfg", "conf", "ini", "json", "xml", "yaml", "yml",
}

// ConfigLogExtensions cover configuration and log files.
var ConfigLogExtensions = []string{
	"txt", "log", "log1", "properties", "plist", "settings", "lock",
	"csv", "pid", "out", "err", "debug", "trace", "cache",
}

// BackupSuffixes are common suffixes appended to copies of live files.
var BackupSuffixes = []string{
	"bak", "bak1", "bak2", "backup", "old", "old1", "old2", "orig", "original",
	"save", "saved", "copy", "copy1", "copy2", "tmp", "temp", "new", "dist",
	"prev", "previous", "last", "~", ".~", "swp", "swo",
}

// ArchiveExtensions are compressed files likely to be site backups.
var ArchiveExtensions = []string{
	"zip", "rar", "tar", "tar.gz", "tar.bz2", "tar.xz", "tgz", "tbz2", "txz",
	"7z", "gz", "gzip", "bz2", "xz", "lzma", "z", "Z", "ace", "arj",
}

// DatabaseExtensions are database files often forgotten on servers.
var DatabaseExtensions = []string{
	"sql", "dump", "db", "sqlite", "sqlite3", "mdb", "accdb", "dbf",
	"sdf", "mdf", "ldf", "frm", "ibd", "opt", "par", "TRG", "TRN",
}

// ConfigExtensions are sensitive configuration leftovers.
var ConfigExtensions = []string{
	"env", "config", "cfg", "conf", "ini", "yaml", "yml", "json", "xml",
	"properties", "plist", "toml", "settings", "lock", "pid",
}

// IDELeftoverExtensions are temporary files left by editors.
var IDELeftoverExtensions = []string{
	"swp", "swo", "swn", "tmp~", "tmp.swp", "tmp.save", "sml",
	"autosave", "kate-swp", "bak~", "backup~", ".#", "#",
	"~1", "~2", "~3", "$$$", "___", ".tmp", ".temp",
}

// CodeBackupExtensions are source files with backup extensions.
var CodeBackupExtensions = []string{
	"php.bak", "php.old", "php.save", "php.tmp", "php~", "php.orig",
	"jsp.bak", "jsp.old", "jsp.save", "jsp~", "jsp.orig",
	"asp.bak", "asp.old", "asp.save", "asp~", "asp.orig",
	"aspx.bak", "aspx.old", "aspx.save", "aspx~", "aspx.orig",
	"py.bak", "py.old", "py.save", "py~", "py.orig", "py.tmp",
	"rb.bak", "rb.old", "rb.save", "rb~", "rb.orig",
	"sh.bak", "sh.old", "sh.save", "sh~", "sh.orig",
	"js.bak", "js.old", "js.save", "js~", "js.orig",
	"css.bak", "css.old", "css.save", "css~", "css.orig",
	"html.bak", "html.old", "html.save", "html~", "html.orig",
}

// VCSLeftoverExtensions are files left by version control operations.
var VCSLeftoverExtensions = []string{
	"rej", "patch", "diff", "merge", "orig", "mine", "theirs",
	"r1", "r2", "working", "conflict", "BASE", "LOCAL", "REMOTE",
}

// DocumentBackupExtensions are documents that may hold sensitive data.
var DocumentBackupExtensions = []string{
	"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx",
	"pdf.bak", "doc.bak", "docx.bak", "xls.bak", "xlsx.bak",
	"rtf", "odt", "ods", "odp", "txt.bak", "csv.bak",
}

// SecurityExtensions are credential and key material files.
var SecurityExtensions = []string{
	"key", "pem", "crt", "cert", "p12", "pfx", "jks", "keystore", "csr",
	"htpasswd", "passwd", "shadow", "pwd", "secret", "credentials",
	"token", "auth", "oauth", "session", "cookie", "api_key",
	"private", "public", "rsa", "dsa", "ssh", "gpg", "pgp",
}

// BuildConfigExtensions are environment and build artifacts.
var BuildConfigExtensions = []string{
	"env.local", "env.dev", "env.prod", "env.test", "env.staging", "env.backup",
	"lock.json", "yarn.lock", "package-lock.json", "composer.lock", "Pipfile.lock",
	"requirements.txt.bak", "pom.xml.bak", "build.gradle.bak", "Makefile.bak",
}

// ExtrasExtensions are low-yield extensions reserved for exhaustive scans.
var ExtrasExtensions = []string{
	"wml", "bkl", "wmls", "udl", "bat", "dll", "reg", "cmd", "vbs",
	"hta", "wsf", "cpl", "msc", "lnk", "url", "inf", "ins", "isp",
	"teste.asp", "test.asp", "teste.aspx", "test.aspx", "teste.php", "test.php",
}

// CriticalFiles are complete filenames probed at every scan level,
// before anything else. Key material and environment files first.
var CriticalFiles = []string{
	".env",
	"certificate.pfx",
	"certificado.pfx",
	"server.key",
	"privatekey.pem",
	"private.key",
	"id_rsa",
	".htpasswd",
	"credentials.json",
	"secrets.json",
	"backup.sql",
	"dump.sql",
	"config.php.bak",
	"web.config.bak",
	"wp-config.php.bak",
}

// SpecificFiles are complete filenames tested as-is at deeper levels.
var SpecificFiles = []string{
	"backup.zip", "site.zip", "www.zip", "backup.tar.gz", "site.tar.gz",
	"database.sql", "db.sql", "data.sql", "mysql.sql", "dump.rdb",
	"phpinfo.php", "info.php", "test.php",
	"composer.json", "composer.lock", "package.json", "package-lock.json",
	"yarn.lock", "Dockerfile", "docker-compose.yml",
	"config.json", "settings.py", "local_settings.py", "appsettings.json",
	"web.config", "wp-config.php.old",
	"error_log", "access.log", "debug.log", "npm-debug.log", "php_errors.log",
	"sftp-config.json", ".ftpconfig", ".npmrc", ".bash_history",
}

// VCSFiles are version control artifacts exposed at the web root.
var VCSFiles = []string{
	".git/HEAD", ".git/config", ".git/index",
	".svn/entries", ".svn/wc.db",
	".hg/requires", ".bzr/README", "CVS/Root",
}

// Keyword wordlists for brute-force expansion, split by language so
// operators can narrow the sweep.

// DefaultFilesWords are filenames common to most deployments.
var DefaultFilesWords = []string{
	"README", "assets", "composer", "content", "contents", "debug", "logging",
	"package", "readme", "service", "service1", "swagger", "test", "trace", "ws",
}

// BackupDirectoryWords name directories where copies accumulate, in
// English and Portuguese.
var BackupDirectoryWords = []string{
	"anterior", "antigo", "archive", "archived", "archives", "atual", "back",
	"backup", "bkp", "copy", "copia", "current", "deletar", "delete", "dev",
	"devel", "development", "draft", "guardar", "historical", "history", "hml",
	"homolog", "homologacao", "homologation", "latest", "lixo", "log", "logs",
	"new", "novo", "old", "old_version", "orig", "original", "prd", "prod",
	"producao", "production", "rascunho", "release", "reserva", "salvo", "save",
	"saved", "security", "seguranca", "stable", "staging", "temp", "temporario",
	"temporary", "tmp", "trash", "version", "versao",
}

// WebRelatedWords name webroot and hosting directories.
var WebRelatedWords = []string{
	"backend", "conteudo", "deploy", "frontend", "hosting", "hospedagem",
	"htdocs", "html", "httpdocs", "inetpub", "page", "pagina", "portal",
	"public", "public_html", "publication", "publicacao", "site", "sistema",
	"static", "system", "web", "webpage", "webroot", "website", "www", "www-data",
	"arq", "arquivo", "arquivos",
}

// VersionControlWords cover VCS directory names.
var VersionControlWords = []string{
	".git", ".svn", "bk", "cvs", "git", "hg", "svn",
}

// DateVersionWords cover datestamped and versioned copies.
var DateVersionWords = []string{
	"1.0", "2.0", "2020", "2021", "2022", "2023", "2024", "2025", "abr", "abril",
	"ago", "agosto", "apr", "april", "aug", "august", "dec", "december", "dez",
	"dezembro", "feb", "february", "fev", "fevereiro", "jan", "janeiro", "jul",
	"july", "jun", "junho", "june", "mai", "maio", "mar", "march", "marco", "may",
	"nov", "november", "novembro", "oct", "october", "out", "outubro", "sep",
	"september", "set", "setembro", "v1", "v2", "v3",
}

// PTBRCommonWords are general Portuguese terms.
var PTBRCommonWords = []string{
	"acesso", "ajuda", "api", "aplicacao", "aplicativo", "aprovado", "configuracao",
	"dados", "desenvolvedor", "documentacao", "emergencia", "importante",
	"informacao", "interno", "manutencao", "pendente", "privado", "projeto",
	"recuperacao", "restrito", "revisado", "secreto", "segredo", "senha",
	"servico", "servidor", "suporte", "teste", "usuario", "webservice", "webservices",
}

// ENCommonWords are general English terms.
var ENCommonWords = []string{
	"access", "account", "accounting", "action", "actions", "activity", "activities",
	"admin", "administrative", "app", "application", "approved", "attachment",
	"authentication", "balance", "billing", "board", "bookkeeping", "box", "branch",
	"budget", "candidate", "certificate", "client", "compliance", "company",
	"configuration", "conf", "config", "contract", "corporate", "credit", "data",
	"database", "db", "debit", "default", "department", "developer", "digitize",
	"dist", "documentation", "download", "dump", "election", "electoral", "email",
	"emergency", "encryption", "entity", "expense", "export", "financial", "fiscal",
	"firewall", "flow", "form", "foundation", "government", "group", "guide",
	"guidelines", "guides", "help", "hidden", "hiring", "id", "important", "import",
	"income", "information", "input", "install", "institutional", "internal",
	"inventory", "intranet", "loss", "mail", "maintenance", "management", "manual",
	"manuals", "memo", "message", "ministry", "model", "network", "nfe", "nfse",
	"norm", "normative", "norms", "note", "notice", "organization", "ordinance",
	"output", "password", "payable", "payment", "pending", "planning", "policy",
	"prefecture", "private", "printing", "printer", "process", "product", "program",
	"programs", "project", "proposal", "proposals", "protocol", "proxy", "purchase",
	"queue", "receivable", "record", "recovery", "register", "registration",
	"regulated", "regulation", "regulatory", "report", "reports", "research",
	"resolution", "restricted", "result", "reviewed", "sale", "sales", "scanner",
	"secret", "secretary", "sent", "server", "service", "settings", "setup",
	"society", "statement", "strategy", "strategic", "supplier", "support", "tax",
	"test", "token", "transaction", "unit", "upload", "uploads", "user", "vpn", "wap",
}

// PTBRBusinessWords are Portuguese business and finance terms.
var PTBRBusinessWords = []string{
	"admin", "administrativo", "balanco", "boleto", "cadastro", "carteira",
	"cliente", "cobranca", "comercial", "compra", "contabil", "contabilidade",
	"credito", "debito", "despesa", "diretoria", "estoque", "extrato", "fatura",
	"financeiro", "fiscal", "fluxo", "formulario", "fornecedor", "gerencia",
	"investimento", "lucro", "nfe", "nfse", "orcamento", "orcamentos", "pagar",
	"pagamento", "pesquisa", "prejuizo", "produto", "receber", "receita", "registro",
	"verificar", "relatorio", "relatorios", "resultado", "transacao", "venda", "vendas",
	"valor", "valores", "campanha", "campanhas", "cartao", "cartoes", "comissao", "comissoes",
	"corretora", "corretoras", "cotacao", "cotacoes", "financiamento", "consorcio", "imobiliario",
	"imoveis", "imovel", "investidor", "investidores", "leilao", "leiloes", "lote", "lotes",
	"patrimonio", "prospeccao", "prospeccoes", "seguros", "seguro", "taxa", "taxas", "prolabore",
	"tributo", "tributos", "tributacao", "tributacoes", "tributario", "tributarios", "vencimento",
	"vencimentos", "vendedor", "vendedores", "vitrine", "vitrines",
}

// PTBRCorporateWords are Portuguese corporate and government terms.
var PTBRCorporateWords = []string{
	"acao", "acoes", "associacao", "atividade", "atividades", "auditoria",
	"candidato", "cnpj", "comite", "compliance", "concurso", "conselho", "conta",
	"contratacao", "contrato", "contratos", "corporativo", "cpf", "departamento", "diretrizes",
	"edital", "eleicao", "eleitoral", "empresa", "entidade", "estrategia",
	"estrategico", "filial", "fundacao", "gestao", "governo", "grupo", "guia",
	"guias", "imposto", "institucional", "inscricao", "licitacao", "manual",
	"manuals", "memorando", "ministerio", "norma", "normas", "normativo", "nota",
	"organizacao", "planejamento", "politica", "portaria", "prefeitura", "processo",
	"programa", "programas", "proposta", "propostas", "protocolo", "regulamento",
	"regulamentacao", "resolucao", "rg", "sede", "secretaria", "sociedade", "unidade",
}

// PTBRTechnicalWords are Portuguese infrastructure terms.
var PTBRTechnicalWords = []string{
	"anexo", "autenticacao", "caixa", "certificado", "correio", "criptografia",
	"digitalizar", "download", "email", "entrada", "enviado", "extranet", "fila",
	"firewall", "impressao", "impressora", "intranet", "mensagem", "proxy", "rede",
	"saida", "scanner", "token", "upload", "uploads", "vpn", "variaveis",
	"variavel",
}

// DatabaseConfigWords name database and installer paths.
var DatabaseConfigWords = []string{
	"conf", "config", "data", "database", "db", "dist", "dump", "exportacao",
	"hidden", "importacao", "install", "internal", "modelo", "padrao", "private",
	"settings", "setup",
}

// CommonIPPaths are directories worth probing when the target is a
// bare IP address and no domain tokens exist to derive words from.
var CommonIPPaths = []string{
	"admin", "dashboard", "api", "app", "backup", "config", "data",
	"files", "logs", "private", "public", "system", "temp", "upload",
}

// CommonPorts show up as directory names on multi-service hosts.
var CommonPorts = []string{"8080", "8443", "9000"}

// WordsByLanguage filters the keyword lists for brute-force sweeps.
// Recognized languages: "en", "pt-br", "all".
func WordsByLanguage(language string) []string {
	switch language {
	case "en":
		return concat(DefaultFilesWords, ENCommonWords, BackupDirectoryWords,
			WebRelatedWords, VersionControlWords, DateVersionWords)
	case "pt-br":
		return concat(DefaultFilesWords, PTBRCommonWords, PTBRBusinessWords,
			PTBRCorporateWords, PTBRTechnicalWords, BackupDirectoryWords)
	default:
		return concat(DefaultFilesWords, BackupDirectoryWords, WebRelatedWords,
			VersionControlWords, DateVersionWords, ENCommonWords, PTBRCommonWords,
			PTBRBusinessWords, PTBRCorporateWords, PTBRTechnicalWords,
			DatabaseConfigWords)
	}
}

// concat joins lists into a fresh slice.
func concat(lists ...[]string) []string {
	size := 0
	for _, l := range lists {
		size += len(l)
	}
	out := make([]string, 0, size)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// dedup removes repeats while preserving first-seen order.
func dedup(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// head returns the first n entries, or the whole list if shorter.
func head(list []string, n int) []string {
	if len(list) < n {
		return list
	}
	return list[:n]
}
