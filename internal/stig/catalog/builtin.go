package catalog

// BuiltinVersion identifies the catalog compiled into the binary.
const BuiltinVersion = "builtin-2025.10"

// Builtin returns a fresh copy of the compiled-in STIG family catalog.
// Order matters: it is the final tie-breaker when ranking recommendations.
func Builtin() []Family {
	return cloneAll(builtinFamilies)
}

var builtinFamilies = []Family{
	{
		ID:                    "windows-server-2022",
		Name:                  "Microsoft Windows Server 2022 STIG",
		Description:           "Configuration requirements for Windows Server 2022 member servers and domain controllers.",
		ApplicableSystemTypes: []string{"Windows", "Server", "Operating System"},
		TriggerKeywords:       []string{"windows server", "windows", "active directory", "domain controller", "group policy", "powershell", "server 2022"},
		ControlFamilies:       []string{"AC", "AU", "CM", "IA", "SC", "SI"},
		Priority:              PriorityHigh,
		EstimatedRequirements: 273,
		Version:               "V2R5",
		ReleaseDate:           "2025-07-02",
		StigID:                "MS_Windows_Server_2022_STIG",
		Validated:             true,
	},
	{
		ID:                    "windows-11",
		Name:                  "Microsoft Windows 11 STIG",
		Description:           "Workstation hardening for Windows 11 endpoints.",
		ApplicableSystemTypes: []string{"Windows", "Workstation", "Endpoint"},
		TriggerKeywords:       []string{"windows 11", "windows 10", "workstation", "desktop", "endpoint", "bitlocker", "laptop"},
		ControlFamilies:       []string{"AC", "AU", "CM", "IA", "SC"},
		Priority:              PriorityMedium,
		EstimatedRequirements: 258,
		Version:               "V2R4",
		ReleaseDate:           "2025-07-02",
		StigID:                "MS_Windows_11_STIG",
		Validated:             true,
	},
	{
		ID:                    "rhel-9",
		Name:                  "Red Hat Enterprise Linux 9 STIG",
		Description:           "Operating system configuration for RHEL 9 hosts.",
		ApplicableSystemTypes: []string{"Linux", "Server", "Operating System"},
		TriggerKeywords:       []string{"red hat", "rhel", "linux", "selinux", "systemd", "yum", "dnf", "fips mode"},
		ControlFamilies:       []string{"AC", "AU", "CM", "IA", "SC", "SI"},
		Priority:              PriorityHigh,
		EstimatedRequirements: 446,
		Version:               "V2R5",
		ReleaseDate:           "2025-07-02",
		StigID:                "RHEL_9_STIG",
		Validated:             true,
	},
	{
		ID:                    "ubuntu-22-04",
		Name:                  "Canonical Ubuntu 22.04 LTS STIG",
		Description:           "Operating system configuration for Ubuntu 22.04 LTS hosts.",
		ApplicableSystemTypes: []string{"Linux", "Server", "Operating System"},
		TriggerKeywords:       []string{"ubuntu", "debian", "linux", "apt", "apparmor", "ufw"},
		ControlFamilies:       []string{"AC", "AU", "CM", "IA", "SC", "SI"},
		Priority:              PriorityHigh,
		EstimatedRequirements: 181,
		Version:               "V2R5",
		ReleaseDate:           "2025-07-02",
		StigID:                "CAN_Ubuntu_22-04_LTS_STIG",
		Validated:             true,
	},
	{
		ID:                    "cisco-ios-xe-router",
		Name:                  "Cisco IOS XE Router NDM/RTR STIG",
		Description:           "Management plane and routing requirements for Cisco IOS XE routers.",
		ApplicableSystemTypes: []string{"Network", "Router"},
		TriggerKeywords:       []string{"cisco", "router", "routing", "bgp", "ospf", "ios xe", "network device"},
		ControlFamilies:       []string{"AC", "AU", "CM", "IA", "SC"},
		Priority:              PriorityHigh,
		EstimatedRequirements: 120,
		Version:               "V3R4",
		ReleaseDate:           "2025-04-02",
		StigID:                "Cisco_IOS-XE_Router_RTR_STIG",
		Validated:             true,
	},
	{
		ID:                    "cisco-ios-xe-switch",
		Name:                  "Cisco IOS XE Switch L2S STIG",
		Description:           "Layer 2 switching requirements for Cisco IOS XE switches.",
		ApplicableSystemTypes: []string{"Network", "Switch"},
		TriggerKeywords:       []string{"cisco", "switch", "vlan", "layer 2", "spanning tree", "802.1x"},
		ControlFamilies:       []string{"AC", "CM", "SC"},
		Priority:              PriorityMedium,
		EstimatedRequirements: 98,
		Version:               "V3R2",
		ReleaseDate:           "2025-04-02",
		StigID:                "Cisco_IOS-XE_Switch_L2S_STIG",
		Validated:             true,
	},
	{
		ID:                    "vmware-vsphere-8",
		Name:                  "VMware vSphere 8.0 STIG",
		Description:           "Hypervisor and vCenter hardening for vSphere 8.0.",
		ApplicableSystemTypes: []string{"Virtualization", "Hypervisor"},
		TriggerKeywords:       []string{"vmware", "vsphere", "esxi", "vcenter", "hypervisor", "virtual machine", "virtualization"},
		ControlFamilies:       []string{"AC", "AU", "CM", "IA", "SC"},
		Priority:              PriorityHigh,
		EstimatedRequirements: 210,
		Version:               "V2R2",
		ReleaseDate:           "2025-04-02",
		StigID:                "VMW_vSphere_8-0_STIG",
		Validated:             true,
	},
	{
		ID:                    "postgresql-9x",
		Name:                  "PostgreSQL 9.x STIG",
		Description:           "Database security requirements for PostgreSQL deployments.",
		ApplicableSystemTypes: []string{"Database"},
		TriggerKeywords:       []string{"postgresql", "postgres", "database", "pgaudit", "psql", "sql"},
		ControlFamilies:       []string{"AC", "AU", "IA", "SC", "SI"},
		Priority:              PriorityHigh,
		EstimatedRequirements: 124,
		Version:               "V2R5",
		ReleaseDate:           "2024-10-30",
		StigID:                "PGS_SQL_9-x_STIG",
		Validated:             true,
	},
	{
		ID:                    "oracle-database-19c",
		Name:                  "Oracle Database 19c STIG",
		Description:           "Database security requirements for Oracle Database 19c.",
		ApplicableSystemTypes: []string{"Database"},
		TriggerKeywords:       []string{"oracle", "database", "listener", "pl/sql", "sql", "tablespace"},
		ControlFamilies:       []string{"AC", "AU", "IA", "SC", "SI"},
		Priority:              PriorityHigh,
		EstimatedRequirements: 198,
		Version:               "V1R2",
		ReleaseDate:           "2025-01-30",
		StigID:                "Oracle_Database_19c_STIG",
		Validated:             true,
	},
	{
		ID:                    "ms-sql-server-2022",
		Name:                  "Microsoft SQL Server 2022 STIG",
		Description:           "Instance and database requirements for SQL Server 2022.",
		ApplicableSystemTypes: []string{"Database", "Windows"},
		TriggerKeywords:       []string{"sql server", "mssql", "microsoft sql", "t-sql", "database", "sql"},
		ControlFamilies:       []string{"AC", "AU", "IA", "SC", "SI"},
		Priority:              PriorityHigh,
		EstimatedRequirements: 150,
		Version:               "V1R1",
		ReleaseDate:           "2025-04-02",
		StigID:                "MS_SQL_Server_2022_STIG",
		Validated:             true,
	},
	{
		ID:                    "apache-web-server-2-4",
		Name:                  "Apache Server 2.4 UNIX Server STIG",
		Description:           "Web server requirements for Apache HTTP Server 2.4 on UNIX.",
		ApplicableSystemTypes: []string{"Web Server", "Linux"},
		TriggerKeywords:       []string{"apache", "httpd", "web server", "virtual host", "mod_ssl"},
		ControlFamilies:       []string{"AC", "AU", "CM", "SC"},
		Priority:              PriorityMedium,
		EstimatedRequirements: 90,
		Version:               "V3R2",
		ReleaseDate:           "2024-10-30",
		StigID:                "Apache_Server_2-4_UNIX_Server_STIG",
		Validated:             true,
	},
	{
		ID:                    "iis-10-server",
		Name:                  "Microsoft IIS 10.0 Server STIG",
		Description:           "Server-level requirements for Internet Information Services 10.0.",
		ApplicableSystemTypes: []string{"Web Server", "Windows"},
		TriggerKeywords:       []string{"iis", "internet information services", "web server", "asp.net"},
		ControlFamilies:       []string{"AC", "AU", "CM", "SC"},
		Priority:              PriorityMedium,
		EstimatedRequirements: 60,
		Version:               "V3R3",
		ReleaseDate:           "2025-01-30",
		StigID:                "MS_IIS_10-0_Server_STIG",
		Validated:             true,
	},
	{
		ID:                    "application-security-development",
		Name:                  "Application Security and Development STIG",
		Description:           "Secure design, development and deployment requirements for custom applications.",
		ApplicableSystemTypes: []string{"Application", "Web Application", "API"},
		TriggerKeywords:       []string{"application", "authentication", "session", "input validation", "sql injection", "cross-site", "xss", "encryption", "api", "password", "audit"},
		ControlFamilies:       []string{"AC", "AU", "CM", "IA", "SC", "SI"},
		Priority:              PriorityHigh,
		EstimatedRequirements: 286,
		Version:               "V6R3",
		ReleaseDate:           "2025-04-02",
		StigID:                "ASD_STIG",
		Validated:             true,
	},
	{
		ID:                    "web-server-srg",
		Name:                  "Web Server Security Requirements Guide",
		Description:           "Technology-neutral requirements for web servers and reverse proxies.",
		ApplicableSystemTypes: []string{"Web Server"},
		TriggerKeywords:       []string{"web server", "http", "https", "tls", "reverse proxy", "nginx", "load balancer"},
		ControlFamilies:       []string{"AC", "AU", "CM", "SC"},
		Priority:              PriorityMedium,
		EstimatedRequirements: 110,
		Version:               "V4R2",
		ReleaseDate:           "2025-01-30",
		StigID:                "Web_Server_SRG",
		Validated:             true,
	},
	{
		ID:                    "nodejs-security",
		Name:                  "Node.js Secure Configuration Guidance",
		Description:           "Runtime and dependency hardening for Node.js services.",
		ApplicableSystemTypes: []string{"Application", "Runtime"},
		TriggerKeywords:       []string{"node.js", "nodejs", "npm", "express", "javascript", "typescript", "package.json"},
		ControlFamilies:       []string{"CM", "SC", "SI"},
		Priority:              PriorityMedium,
		EstimatedRequirements: 45,
		Validated:             false,
	},
	{
		ID:                    "secure-coding-practices",
		Name:                  "Secure Coding Practices",
		Description:           "Code review, static analysis and dependency hygiene practices.",
		ApplicableSystemTypes: []string{"Application"},
		TriggerKeywords:       []string{"secure coding", "code review", "static analysis", "sast", "dependency", "owasp", "vulnerability scan"},
		ControlFamilies:       []string{"CM", "SA", "SI"},
		Priority:              PriorityMedium,
		EstimatedRequirements: 40,
		Validated:             false,
	},
	{
		ID:                    "docker-enterprise",
		Name:                  "Docker Enterprise 2.x Linux/UNIX STIG",
		Description:           "Container engine and image requirements.",
		ApplicableSystemTypes: []string{"Container"},
		TriggerKeywords:       []string{"docker", "container", "dockerfile", "image registry", "containerd"},
		ControlFamilies:       []string{"AC", "CM", "SC"},
		Priority:              PriorityMedium,
		EstimatedRequirements: 100,
		Version:               "V2R2",
		ReleaseDate:           "2024-07-24",
		StigID:                "Docker_Enterprise_2-x_Linux-UNIX_STIG",
		Validated:             true,
	},
	{
		ID:                    "kubernetes",
		Name:                  "Kubernetes STIG",
		Description:           "Control plane, node and workload requirements for Kubernetes clusters.",
		ApplicableSystemTypes: []string{"Container", "Orchestration"},
		TriggerKeywords:       []string{"kubernetes", "k8s", "kubelet", "pod", "cluster", "helm chart"},
		ControlFamilies:       []string{"AC", "AU", "CM", "SC"},
		Priority:              PriorityHigh,
		EstimatedRequirements: 93,
		Version:               "V2R3",
		ReleaseDate:           "2025-04-02",
		StigID:                "Kubernetes_STIG",
		Validated:             true,
	},
	{
		ID:                    "general-purpose-os-srg",
		Name:                  "General Purpose Operating System SRG",
		Description:           "Baseline requirements for any operating system without a product STIG.",
		ApplicableSystemTypes: []string{"Operating System"},
		TriggerKeywords:       []string{"operating system", "os hardening", "baseline configuration", "patch"},
		ControlFamilies:       []string{"AC", "AU", "CM", "IA", "SC", "SI"},
		Priority:              PriorityLow,
		EstimatedRequirements: 200,
		Version:               "V3R1",
		ReleaseDate:           "2025-01-30",
		StigID:                "GPOS_SRG",
		Validated:             true,
	},
	{
		ID:                    "network-device-management-srg",
		Name:                  "Network Device Management SRG",
		Description:           "Management plane requirements for network devices and firewalls.",
		ApplicableSystemTypes: []string{"Network", "Firewall"},
		TriggerKeywords:       []string{"network", "firewall", "snmp", "ssh", "ntp", "management plane"},
		ControlFamilies:       []string{"AC", "AU", "CM", "IA"},
		Priority:              PriorityMedium,
		EstimatedRequirements: 70,
		Version:               "V5R3",
		ReleaseDate:           "2024-10-30",
		StigID:                "Network_Device_Management_SRG",
		Validated:             true,
	},
}
